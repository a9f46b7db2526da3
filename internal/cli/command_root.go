package cli

import (
	"fmt"
	"log/slog"

	"github.com/picatz/dnslists/internal/config"
	"github.com/picatz/dnslists/internal/logging"
	"github.com/spf13/cobra"
)

var CommandRoot = &cobra.Command{
	Use:   "dnslists",
	Short: `dnslists builds categorized lists of public encrypted DNS resolvers`,
	Long: `dnslists fetches public resolver lists from several upstream documents, normalizes
and deduplicates the addresses they mention, and sorts them into lists by protocol
(DoH, DoT, DoQ, DoH3, DNSCrypt), address family, filtering policy and features.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(cmd.Flag("log-level").Value.String())
		if err != nil {
			return err
		}

		noColor, err := cmd.Flags().GetBool("no-color")
		if err != nil {
			return fmt.Errorf("invalid no-color: %w", err)
		}

		slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, noColor))

		return nil
	},
}

// loadConfig returns the configuration file named by --config, or the
// built-in defaults when none is given.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := cmd.Flag("config").Value.String()
	if path == "" {
		return config.Default(), nil
	}

	slog.Debug("loading config", "path", path)

	return config.Load(path)
}

func init() {
	CommandRoot.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	CommandRoot.PersistentFlags().Bool("no-color", false, "disable colored log output")
	CommandRoot.PersistentFlags().String("config", "", "path to a YAML config file, the built-in sources are used if not given")
}
