// Package block defines the atomic pieces of the ledger, transactions and
// the blocks that batch them, along with the canonical hashing rules that
// chain blocks together.
package block

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// zeroHash represents a hash code of zeros. It is only produced when a block
// cannot be serialized, which no well-formed block can trigger.
const zeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// Tx represents a single transfer between two parties. The values are
// carried verbatim; balances and identities are never checked.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// Block represents a batch of transactions sealed by a proof of work and
// bound to its predecessor by hash. Blocks are never mutated once minted.
type Block struct {
	Index        uint64  `json:"index"`
	Timestamp    float64 `json:"timestamp"`
	Transactions []Tx    `json:"transactions"`
	Proof        uint64  `json:"proof"`
	PreviousHash string  `json:"previous_hash"`
}

// New constructs the next block for a chain, stamping it with the current
// wall clock time.
func New(index uint64, txs []Tx, proof uint64, previousHash string) Block {
	if txs == nil {
		txs = []Tx{}
	}

	return Block{
		Index:        index,
		Timestamp:    Now(),
		Transactions: txs,
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// Hash returns the SHA-256 digest of the block's canonical form as a
// lowercase hex string. The canonical form writes every object key in sorted
// order, so two blocks with the same field values always produce the same
// digest no matter how they were put together.
func (b Block) Hash() string {
	data, err := json.Marshal(b)
	if err != nil {
		return zeroHash
	}

	// Round-trip the document through generic values. Marshaling a map
	// writes its keys in sorted order, which pins the canonical form.
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return zeroHash
	}

	canonical, err := json.Marshal(doc)
	if err != nil {
		return zeroHash
	}

	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:])
}

// Now returns the current time as fractional seconds since the epoch, the
// resolution blocks are timestamped with.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
