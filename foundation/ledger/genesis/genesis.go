// Package genesis maintains the settings every chain starts from: the
// sentinel values the first block is minted with and the proof-of-work
// difficulty the node runs at.
package genesis

import (
	"encoding/json"
	"os"

	"github.com/tallychain/tallychain/foundation/ledger/pow"
)

// Sentinel values for the genesis block. They are preserved verbatim from
// the original deployment scheme so chains stay hash compatible across
// implementations.
const (
	SentinelProof        uint64 = 100
	SentinelPreviousHash string = "1"
)

// Genesis represents the chain origin settings.
type Genesis struct {
	Difficulty   int    `json:"difficulty"`    // How many leading zeros a proof digest must carry.
	Proof        uint64 `json:"proof"`         // The proof the genesis block is sealed with.
	PreviousHash string `json:"previous_hash"` // The predecessor hash the genesis block records.
}

// Default returns the settings a node runs with when no genesis file is
// provided.
func Default() Genesis {
	return Genesis{
		Difficulty:   pow.DefaultDifficulty,
		Proof:        SentinelProof,
		PreviousHash: SentinelPreviousHash,
	}
}

// =============================================================================

// Load opens and consumes a genesis file. Settings the file omits keep
// their defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
