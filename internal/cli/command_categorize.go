package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/picatz/dnslists/internal/output"
	"github.com/picatz/dnslists/pkg/endpoint"
	"github.com/spf13/cobra"
)

var CommandCategorize = &cobra.Command{
	Use:   "categorize [files...] [flags]",
	Short: "Categorize resolver observations read as JSON",
	Long: `Read JSON arrays of resolver observations from the given files, or STDIN when no file
(or "-") is given, and sort the addresses they describe into lists.

Each observation looks like:

  {"provider": "Example", "protocols": ["dot"], "addresses": ["dns.example.com:853"],
   "filters": {"unfiltered": true}, "features": {"dnssec": true}}

Without --output the lists are printed to STDOUT as one JSON object keyed by list name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"-"}
		}

		var records []endpoint.Observation

		for _, arg := range args {
			batch, err := readObservations(cmd, arg)
			if err != nil {
				return err
			}
			records = append(records, batch...)
		}

		agg := endpoint.NewAggregator()
		for _, o := range records {
			agg.Add(o)
		}

		stats := agg.Stats()
		slog.Debug("aggregated records",
			"records", stats.Records,
			"skipped", stats.Skipped,
			"addresses", stats.Addresses,
			"invalid", stats.Invalid,
		)

		lists := endpoint.Categorize(agg.Endpoints())

		if dir := cmd.Flag("output").Value.String(); dir != "" {
			counts, err := output.WriteLists(dir, lists)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(counts)
		}

		out := make(map[endpoint.List][]string, len(endpoint.ListNames))
		for _, name := range endpoint.ListNames {
			out[name] = lists.Get(name).Sorted()
		}

		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	},
}

func readObservations(cmd *cobra.Command, name string) ([]endpoint.Observation, error) {
	var r io.Reader = cmd.InOrStdin()

	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("dnslists: error opening observations: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []endpoint.Observation
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("dnslists: error decoding observations from %s: %w", name, err)
	}

	return records, nil
}

func init() {
	CommandCategorize.Flags().String("output", "", "directory to write the lists to instead of printing them")

	CommandRoot.AddCommand(CommandCategorize)
}
