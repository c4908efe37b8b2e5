package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/block"
)

// mempoolCmd represents the mempool command.
var mempoolCmd = &cobra.Command{
	Use:   "mempool",
	Short: "Print the transactions waiting to be mined",
	RunE: func(cmd *cobra.Command, args []string) error {
		var txs []block.Tx
		if err := httpGet(fmt.Sprintf("%s/v1/tx/uncommitted/list", url), &txs); err != nil {
			return err
		}

		if len(txs) == 0 {
			pterm.Info.Println("mempool is empty")
			return nil
		}

		rows := pterm.TableData{
			{"SENDER", "RECIPIENT", "AMOUNT"},
		}
		for _, tx := range txs {
			rows = append(rows, []string{
				tx.Sender,
				tx.Recipient,
				strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			})
		}

		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(mempoolCmd)
}
