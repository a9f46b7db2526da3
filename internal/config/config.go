// Package config loads the collector configuration: where to write the
// lists, how to fetch, and which sources to read.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/core/sources"
	"github.com/picatz/dnslists/internal/output"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Config is the collector configuration file.
type Config struct {
	// Output is the directory the lists are written to.
	Output string `yaml:"output"`

	// Timeout bounds a whole collection run.
	Timeout time.Duration `yaml:"timeout"`

	// RequestTimeout bounds each HTTP request attempt.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Retries int `yaml:"retries"`

	// Concurrency is the number of sources fetched at once. Zero means
	// GOMAXPROCS.
	Concurrency int `yaml:"concurrency"`

	// PerSource also writes the lists of each source on its own.
	PerSource bool `yaml:"per_source"`

	// Summary writes a Markdown summary next to the lists.
	Summary bool `yaml:"summary"`

	Sources []Source `yaml:"sources"`
}

// Source names a document to collect and the parser for its format.
type Source struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Parser  string `yaml:"parser"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the source is collected. Sources are enabled
// unless they say otherwise.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := decode(Config{}, defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded default: %v", err))
	}
	return cfg
}

// Parse decodes a YAML document over the built-in defaults. A document
// that lists sources replaces the default sources entirely.
func Parse(data []byte) (Config, error) {
	return decode(Default(), data)
}

func decode(cfg Config, data []byte) (Config, error) {
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("dnslists: failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("dnslists: failed to read config file: %w", err)
	}

	return Parse(data)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var merr *multierror.Error

	if c.Output == "" {
		merr = multierror.Append(merr, errors.New("output must be set"))
	}
	if c.Timeout < 0 {
		merr = multierror.Append(merr, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.RequestTimeout < 0 {
		merr = multierror.Append(merr, fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout))
	}
	if c.Retries < 0 {
		merr = multierror.Append(merr, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	if c.Concurrency < 0 {
		merr = multierror.Append(merr, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if len(c.Sources) == 0 {
		merr = multierror.Append(merr, errors.New("at least one source must be configured"))
	}

	var (
		seen = map[string]bool{}
		dirs = map[string]string{}
	)
	for i, src := range c.Sources {
		switch {
		case src.Name == "":
			merr = multierror.Append(merr, fmt.Errorf("sources[%d]: name must be set", i))
		case seen[src.Name]:
			merr = multierror.Append(merr, fmt.Errorf("sources[%d]: duplicate name %q", i, src.Name))
		default:
			dir := output.DirName(src.Name)
			if other, ok := dirs[dir]; ok {
				merr = multierror.Append(merr, fmt.Errorf("sources[%d]: name %q shares the list directory %q with %q", i, src.Name, dir, other))
			}
			dirs[dir] = src.Name
		}
		seen[src.Name] = true

		if src.URL == "" {
			merr = multierror.Append(merr, fmt.Errorf("sources[%d]: url must be set", i))
		}

		if src.Parser == "" {
			merr = multierror.Append(merr, fmt.Errorf("sources[%d]: parser must be set", i))
		} else if _, ok := sources.Lookup(src.Parser); !ok {
			merr = multierror.Append(merr, fmt.Errorf("sources[%d]: unknown parser %q", i, src.Parser))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("dnslists: invalid config: %w", err)
	}
	return nil
}

// Enabled resolves the enabled sources to their parsers, in configured
// order. When names is not empty, only the named sources are returned,
// whether enabled or not.
func (c Config) Enabled(names ...string) (core.Sources, error) {
	want := map[string]bool{}
	for _, name := range names {
		want[name] = true
	}

	var (
		out  core.Sources
		merr *multierror.Error
	)

	for _, src := range c.Sources {
		if len(want) > 0 {
			if !want[src.Name] {
				continue
			}
			delete(want, src.Name)
		} else if !src.IsEnabled() {
			continue
		}

		parse, ok := sources.Lookup(src.Parser)
		if !ok {
			merr = multierror.Append(merr, fmt.Errorf("source %q: unknown parser %q", src.Name, src.Parser))
			continue
		}

		out = append(out, core.Source{Name: src.Name, URL: src.URL, Parse: parse})
	}

	for _, name := range names {
		if want[name] {
			merr = multierror.Append(merr, fmt.Errorf("unknown source %q", name))
			delete(want, name)
		}
	}

	return out, merr.ErrorOrNil()
}
