package commands

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallychain/tallychain/foundation/ledger/block"
)

// chainCmd represents the chain command.
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Length int           `json:"length"`
			Chain  []block.Block `json:"chain"`
		}
		if err := httpGet(fmt.Sprintf("%s/v1/chain/list", url), &resp); err != nil {
			return err
		}

		rows := pterm.TableData{
			{"INDEX", "HASH", "PREVIOUS", "PROOF", "TXS", "MINED"},
		}
		for _, blk := range resp.Chain {
			sec, frac := math.Modf(blk.Timestamp)
			rows = append(rows, []string{
				strconv.FormatUint(blk.Index, 10),
				shorten(blk.Hash()),
				shorten(blk.PreviousHash),
				strconv.FormatUint(blk.Proof, 10),
				strconv.Itoa(len(blk.Transactions)),
				time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339),
			})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}

		pterm.Info.Printfln("%d blocks", resp.Length)
		return nil
	},
}

// shorten keeps hashes readable in the table.
func shorten(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:8] + ".." + hash[len(hash)-6:]
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
