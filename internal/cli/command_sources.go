package cli

import (
	"encoding/json"

	"github.com/picatz/dnslists/core/sources"
	"github.com/spf13/cobra"
)

type sourceInfo struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Parser  string `json:"parser"`
	Enabled bool   `json:"enabled"`
}

var CommandSources = &cobra.Command{
	Use:   "sources [flags]",
	Short: "List the configured sources",
	Long: `List the configured sources as newline delimited JSON objects, or with --parsers the
names of the available document parsers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := json.NewEncoder(cmd.OutOrStdout())

		parsers, err := cmd.Flags().GetBool("parsers")
		if err != nil {
			return err
		}

		if parsers {
			for _, name := range sources.Names() {
				if err := output.Encode(name); err != nil {
					return err
				}
			}
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		for _, src := range cfg.Sources {
			err := output.Encode(&sourceInfo{
				Name:    src.Name,
				URL:     src.URL,
				Parser:  src.Parser,
				Enabled: src.IsEnabled(),
			})
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	CommandSources.Flags().Bool("parsers", false, "list the available parsers instead")

	CommandRoot.AddCommand(CommandSources)
}
