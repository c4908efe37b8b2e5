package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/block"
)

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run a consensus pass against the node's peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Replaced bool          `json:"replaced"`
			Length   int           `json:"length"`
			Chain    []block.Block `json:"chain"`
		}
		if err := httpGet(fmt.Sprintf("%s/v1/consensus/resolve", url), &resp); err != nil {
			return err
		}

		if resp.Replaced {
			pterm.Success.Printfln("chain replaced, now %d blocks", resp.Length)
			return nil
		}

		pterm.Info.Printfln("chain kept, %d blocks", resp.Length)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
