// Package chain validates candidate chains: the hash link and the proof of
// work seal between every adjacent pair of blocks.
package chain

import (
	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/pow"
)

// IsValid reports whether every adjacent pair of blocks in the chain is
// correctly linked: the later block must record the hash of its predecessor
// and carry a proof that solves the puzzle against the predecessor's proof.
// A chain with a single block is trivially valid. The first failing pair
// ends the scan; an invalid chain is a normal outcome, not an error.
func IsValid(blocks []block.Block, difficulty int) bool {
	for i := 1; i < len(blocks); i++ {
		prev := blocks[i-1]
		cur := blocks[i]

		if cur.PreviousHash != prev.Hash() {
			return false
		}

		if !pow.IsValid(prev.Proof, cur.Proof, difficulty) {
			return false
		}
	}

	return true
}
