// Package state is the core API for the ledger node and implements all the
// business rules and processing. It owns the chain of blocks and the pool
// of transactions waiting to be mined.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/genesis"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// Sentinel errors the state operations return.
var (
	// ErrEmptyChain reports an operation that needs at least one block ran
	// against a chain with none. New mints the genesis block before the
	// state is handed out, so this means the State was built by hand.
	ErrEmptyChain = errors.New("chain has no blocks")

	// ErrNoTransactions reports a mining run requested with nothing in the
	// mempool to seal.
	ErrNoTransactions = errors.New("no transactions in mempool")

	// ErrChainReplaced reports mining work abandoned because the chain tip
	// it was based on is gone, replaced during a consensus pass.
	ErrChainReplaced = errors.New("chain replaced while mining")
)

// =============================================================================

// EventHandler defines a function that is called when events occur in the
// processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for mining and consensus operations.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// Fetcher defines a function that retrieves the chain length and blocks
// held by the specified peer. Implementations perform network I/O and honor
// the context; an error marks the peer unreachable for the current pass.
type Fetcher func(ctx context.Context, pr peer.Peer) (int, []block.Block, error)

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	Host       string
	Genesis    genesis.Genesis
	KnownPeers *peer.PeerSet
	Fetcher    Fetcher
	EvHandler  EventHandler
}

// State manages the ledger. A single mutex guards the chain and the mempool
// together so a mining append and a wholesale chain replacement can never
// interleave.
type State struct {
	mu      sync.Mutex
	chain   []block.Block
	mempool []block.Tx

	host       string
	genesis    genesis.Genesis
	knownPeers *peer.PeerSet
	fetcher    Fetcher
	evHandler  EventHandler

	Worker Worker
}

// New constructs a ledger and mints its genesis block, so the chain is
// never empty once the state is handed out.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis
	if gen == (genesis.Genesis{}) {
		gen = genesis.Default()
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// Create the State to provide support for managing the ledger.
	state := State{
		host:       cfg.Host,
		genesis:    gen,
		knownPeers: knownPeers,
		fetcher:    cfg.Fetcher,
		evHandler:  ev,
	}

	// Retrieving chains is a network concern. Tests inject their own
	// fetcher; everything else talks HTTP to the peer's node API.
	if state.fetcher == nil {
		state.fetcher = state.netFetchChain
	}

	// Mint the genesis block with the sentinel proof and previous hash
	// before any transaction can arrive.
	if _, err := state.MineBlock(gen.Proof, gen.PreviousHash); err != nil {
		return nil, err
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Stop all ledger writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// SignalMining asks the registered worker to start a mining pass.
func (s *State) SignalMining() {
	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}
}
