package state

import (
	"context"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/pow"
)

// MineNewBlock performs the full mining workflow: solve the proof-of-work
// puzzle against the current chain tip, then seal the mempool into the next
// block. The CPU bound search runs outside the state lock and honors ctx so
// a chain replacement or a shutdown can abandon it.
func (s *State) MineNewBlock(ctx context.Context) (block.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool")

	// Capture the tip the proof will be derived from. Other operations are
	// free to run while the search grinds away.
	s.mu.Lock()
	if len(s.chain) == 0 {
		s.mu.Unlock()
		return block.Block{}, ErrEmptyChain
	}
	if len(s.mempool) == 0 {
		s.mu.Unlock()
		return block.Block{}, ErrNoTransactions
	}
	tip := s.chain[len(s.chain)-1]
	s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: solve: lastProof[%d] difficulty[%d]", tip.Proof, s.genesis.Difficulty)

	proof, err := pow.Solve(ctx, tip.Proof, s.genesis.Difficulty)
	if err != nil {
		return block.Block{}, err
	}

	// Just check one more time the mining wasn't cancelled while the
	// solution was found.
	if ctx.Err() != nil {
		return block.Block{}, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The proof is only good against the tip it was derived from. If a
	// consensus pass swapped the chain while the search ran, this work
	// belongs to a chain that no longer exists.
	last := s.chain[len(s.chain)-1]
	if last.Index != tip.Index || last.Proof != tip.Proof {
		return block.Block{}, ErrChainReplaced
	}

	blk, err := s.mintBlock(proof, "")
	if err != nil {
		return block.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: mined: block[%d] proof[%d] txs[%d]", blk.Index, blk.Proof, len(blk.Transactions))

	return blk, nil
}
