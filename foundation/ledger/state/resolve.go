package state

import (
	"context"
	"sync"
	"time"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/chain"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

// fetchTimeout bounds each peer download during a consensus pass, so one
// unreachable peer cannot stall the rest of the pass.
const fetchTimeout = 5 * time.Second

// ResolveConflicts reconciles this node's chain with its peers using the
// longest valid chain rule. Every known peer is consulted concurrently; a
// peer that cannot be reached or returns a malformed document is skipped
// for this pass. Only a candidate strictly longer than the local chain and
// valid end to end can win, so a tie never causes a swap. It reports
// whether the local chain was replaced, along with the chain the node holds
// after the pass.
func (s *State) ResolveConflicts(ctx context.Context) (bool, []block.Block) {
	s.evHandler("state: ResolveConflicts: started")
	defer s.evHandler("state: ResolveConflicts: completed")

	peers := s.knownPeers.Copy(s.host)

	type candidate struct {
		pr     peer.Peer
		length int
		blocks []block.Block
		err    error
	}
	candidates := make([]candidate, len(peers))

	// Fan the downloads out so a slow peer doesn't serialize the pass. Each
	// download gets its own deadline.
	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func(i int, pr peer.Peer) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			length, blocks, err := s.fetcher(ctx, pr)
			candidates[i] = candidate{pr: pr, length: length, blocks: blocks, err: err}
		}(i, pr)
	}

	wg.Wait()

	// The peers came back sorted by host and the slice preserved that, so
	// this evaluation never depends on which download finished first.
	longest := s.ChainLength()
	var winner []block.Block

	for _, can := range candidates {
		switch {
		case can.err != nil:
			s.evHandler("state: ResolveConflicts: peer[%s]: unreachable: %s", can.pr.Host, can.err)

		case can.length <= longest:
			s.evHandler("state: ResolveConflicts: peer[%s]: chain[%d] not longer than[%d]", can.pr.Host, can.length, longest)

		case !chain.IsValid(can.blocks, s.genesis.Difficulty):
			s.evHandler("state: ResolveConflicts: peer[%s]: chain[%d] failed validation", can.pr.Host, can.length)

		default:
			longest = can.length
			winner = can.blocks
		}
	}

	if winner == nil {
		return false, s.RetrieveChain()
	}

	if !s.replaceChain(winner) {
		s.evHandler("state: ResolveConflicts: candidate[%d] no longer ahead of local chain", longest)
		return false, s.RetrieveChain()
	}

	s.evHandler("state: ResolveConflicts: REPLACED: chain[%d]", longest)

	return true, s.RetrieveChain()
}
