package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// statusCmd represents the status command. The status endpoint lives on
// the node's private API, so point the url flag at that port.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the node's status (private API, e.g. -u http://localhost:9080)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp peer.Status
		if err := httpGet(fmt.Sprintf("%s/v1/node/status", url), &resp); err != nil {
			return err
		}

		pterm.Info.Printfln("latest block: %d", resp.LatestBlockNumber)
		pterm.Info.Printfln("latest hash:  %s", resp.LatestBlockHash)
		for _, p := range resp.KnownPeers {
			pterm.Println(p.Host)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
