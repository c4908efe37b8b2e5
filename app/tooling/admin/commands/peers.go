package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// peersInfo mirrors the node's peer responses.
type peersInfo struct {
	Status     string      `json:"status"`
	Added      int         `json:"added"`
	KnownPeers []peer.Peer `json:"known_peers"`
}

// peersCmd represents the peers command.
var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Manage the node's known peers",
}

var peersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp peersInfo
		if err := httpGet(fmt.Sprintf("%s/v1/peers/list", url), &resp); err != nil {
			return err
		}

		if len(resp.KnownPeers) == 0 {
			pterm.Info.Println("no known peers")
			return nil
		}

		for _, p := range resp.KnownPeers {
			pterm.Println(p.Host)
		}
		return nil
	},
}

var peersAddCmd = &cobra.Command{
	Use:   "add <host> [host...]",
	Short: "Register peers with the node",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := struct {
			Peers []string `json:"peers"`
		}{
			Peers: args,
		}

		var resp peersInfo
		if err := httpPost(fmt.Sprintf("%s/v1/peers/register", url), payload, &resp); err != nil {
			return err
		}

		pterm.Success.Printfln("%d added, %d peers known", resp.Added, len(resp.KnownPeers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
	peersCmd.AddCommand(peersListCmd)
	peersCmd.AddCommand(peersAddCmd)
}
