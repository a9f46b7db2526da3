// Package output persists categorized lists as newline-delimited text
// files plus a Markdown summary.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/pkg/endpoint"
)

// Extension of every list file.
const Extension = ".txt"

// SourcesDir is the subdirectory holding per-source lists.
const SourcesDir = "sources"

// WriteLists writes one file per known list into dir, including empty
// files for empty lists, and returns how many addresses each holds.
func WriteLists(dir string, lists endpoint.Lists) (map[endpoint.List]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dnslists: error creating output directory: %w", err)
	}

	counts := make(map[endpoint.List]int, len(endpoint.ListNames))

	for _, name := range endpoint.ListNames {
		addresses := lists.Get(name).Sorted()
		if err := writeList(filepath.Join(dir, string(name)+Extension), addresses); err != nil {
			return counts, err
		}
		counts[name] = len(addresses)
	}

	return counts, nil
}

// WriteSourceLists writes the non-empty lists of each source into
// dir/sources/<source>/ and removes the files of its empty lists.
func WriteSourceLists(dir string, perSource []core.SourceLists) error {
	for _, sl := range perSource {
		sub := filepath.Join(dir, SourcesDir, DirName(sl.Source.Name))
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("dnslists: error creating source directory: %w", err)
		}

		for _, name := range endpoint.ListNames {
			path := filepath.Join(sub, string(name)+Extension)

			set := sl.Lists.Get(name)
			if len(set) == 0 {
				// Drop the list a previous run may have left behind.
				if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("dnslists: error removing stale list: %w", err)
				}
				continue
			}

			if err := writeList(path, set.Sorted()); err != nil {
				return err
			}
		}
	}

	return nil
}

// DirName turns a source name into a directory name: lowercase, with runs
// of anything but letters, digits, dots and dashes replaced by one dash.
func DirName(source string) string {
	var b strings.Builder

	dash := false
	for _, r := range strings.ToLower(source) {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9', r == '.' && b.Len() > 0:
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	name := strings.TrimRight(b.String(), "-.")
	if name == "" {
		return "unnamed"
	}
	return name
}

func writeList(path string, addresses []string) error {
	var b strings.Builder
	for _, address := range addresses {
		b.WriteString(address)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("dnslists: error writing list: %w", err)
	}
	return nil
}
