package cli

import (
	"encoding/json"
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
	"github.com/spf13/cobra"
)

type check struct {
	Address  string            `json:"address"`
	Valid    bool              `json:"valid"`
	Key      string            `json:"key,omitempty"`
	Protocol endpoint.Protocol `json:"protocol,omitempty"`
	Family   endpoint.Family   `json:"family,omitempty"`
}

var CommandCheck = &cobra.Command{
	Use:   "check addresses...",
	Short: "Validate and normalize resolver addresses",
	Long: `Validate and normalize resolver addresses the same way collected addresses are.

For every address a JSON object is written to STDOUT on its own line, with its
validity, the key it deduplicates under, the protocol its scheme implies, and the
family of its IP literal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output := json.NewEncoder(cmd.OutOrStdout())

		for _, arg := range args {
			address := strings.TrimSpace(arg)

			result := check{
				Address: address,
				Valid:   endpoint.Valid(address),
			}

			if result.Valid {
				result.Key = endpoint.Canonicalize(address)
				if scheme, _, ok := endpoint.Scheme(address); ok {
					result.Protocol = endpoint.SchemeProtocol(scheme)
				}
				result.Family = endpoint.AddressFamily(address)
			}

			if err := output.Encode(&result); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	CommandRoot.AddCommand(CommandCheck)
}
