package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/genesis"
)

// genesisCmd represents the genesis command.
var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Print the chain origin settings the node runs with",
	RunE: func(cmd *cobra.Command, args []string) error {
		var gen genesis.Genesis
		if err := httpGet(fmt.Sprintf("%s/v1/genesis/list", url), &gen); err != nil {
			return err
		}

		pterm.Info.Printfln("difficulty:    %d", gen.Difficulty)
		pterm.Info.Printfln("proof:         %d", gen.Proof)
		pterm.Info.Printfln("previous hash: %s", gen.PreviousHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}
