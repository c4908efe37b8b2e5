package public

import (
	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// tx represents a transaction submitted over the public API.
type tx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount"`
}

// submitInfo is the acknowledgment for an accepted transaction.
type submitInfo struct {
	Status string `json:"status"`
	Block  uint64 `json:"block"`
}

// chainInfo is the public view of the chain and its length.
type chainInfo struct {
	Length int           `json:"length"`
	Chain  []block.Block `json:"chain"`
}

// registerPeers is the set of peer addresses an operator registers. The
// addresses may be full URLs; only the network location is kept.
type registerPeers struct {
	Peers []string `json:"peers" validate:"required,min=1"`
}

// peersInfo reports the known peer set after a change.
type peersInfo struct {
	Status     string      `json:"status,omitempty"`
	Added      int         `json:"added,omitempty"`
	KnownPeers []peer.Peer `json:"known_peers"`
}

// resolveInfo reports the outcome of a consensus pass.
type resolveInfo struct {
	Replaced bool          `json:"replaced"`
	Length   int           `json:"length"`
	Chain    []block.Block `json:"chain"`
}
