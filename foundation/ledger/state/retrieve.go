package state

import (
	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/genesis"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// RetrieveHost returns the network location this node advertises to peers.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveGenesis returns the chain origin settings.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns the block at the tip of the chain.
func (s *State) RetrieveLatestBlock() (block.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chain) == 0 {
		return block.Block{}, ErrEmptyChain
	}

	return s.chain[len(s.chain)-1], nil
}

// RetrieveChain returns a copy of the chain from genesis to tip. Blocks are
// never mutated once minted, so sharing their transaction slices is safe.
func (s *State) RetrieveChain() []block.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := make([]block.Block, len(s.chain))
	copy(blocks, s.chain)

	return blocks
}

// ChainLength returns the number of blocks in the chain.
func (s *State) ChainLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.chain)
}

// RetrieveMempool returns a copy of the uncommitted transactions in arrival
// order.
func (s *State) RetrieveMempool() []block.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := make([]block.Tx, len(s.mempool))
	copy(txs, s.mempool)

	return txs
}

// =============================================================================

// AddKnownPeer registers a peer for consensus passes. It reports whether
// the peer was not already known. The node never records itself.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	if pr.Match(s.host) {
		return false
	}

	return s.knownPeers.Add(pr)
}

// RemoveKnownPeer drops a peer from the consensus set.
func (s *State) RemoveKnownPeer(pr peer.Peer) {
	s.knownPeers.Remove(pr)
}

// RetrieveKnownPeers returns the known peers sorted by host, excluding this
// node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}
