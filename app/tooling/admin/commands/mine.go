package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// mineCmd represents the mine command.
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Signal the node to mine the mempool into a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Status string `json:"status"`
		}
		if err := httpGet(fmt.Sprintf("%s/v1/mining/signal", url), &resp); err != nil {
			return err
		}

		pterm.Success.Println(resp.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
