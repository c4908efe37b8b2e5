package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount float64
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := struct {
			Sender    string  `json:"sender"`
			Recipient string  `json:"recipient"`
			Amount    float64 `json:"amount"`
		}{
			Sender:    from,
			Recipient: to,
			Amount:    amount,
		}

		var resp struct {
			Status string `json:"status"`
			Block  uint64 `json:"block"`
		}
		if err := httpPost(fmt.Sprintf("%s/v1/tx/submit", url), tx, &resp); err != nil {
			return err
		}

		pterm.Success.Printfln("%s: will be recorded in block %d", resp.Status, resp.Block)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Account the funds come from.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account the funds go to.")
	sendCmd.Flags().Float64VarP(&amount, "value", "v", 0, "Value to send.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}
