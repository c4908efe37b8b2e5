package state

import (
	"github.com/tallychain/tallychain/foundation/ledger/block"
)

// SubmitTransaction adds a transaction to the mempool and returns the index
// of the block that will hold it once mining runs. Values are accepted as
// given; there is no balance or identity checking.
func (s *State) SubmitTransaction(tx block.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mempool = append(s.mempool, tx)

	// Indexes are sequential from 1, so the next block to be mined sits one
	// past the end of the chain.
	blockNum := uint64(len(s.chain)) + 1

	s.evHandler("state: SubmitTransaction: tx accepted: mempool[%d] target block[%d]", len(s.mempool), blockNum)

	return blockNum
}

// MineBlock seals everything in the mempool into the next block using the
// supplied proof and appends that block to the chain. When previousHash is
// empty, the hash of the current last block is used. Solving the puzzle is
// the caller's job; MineBlock only assembles and appends.
func (s *State) MineBlock(proof uint64, previousHash string) (block.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mintBlock(proof, previousHash)
}

// mintBlock performs the actual append. Callers must hold the state mutex.
func (s *State) mintBlock(proof uint64, previousHash string) (block.Block, error) {
	if previousHash == "" {
		if len(s.chain) == 0 {
			return block.Block{}, ErrEmptyChain
		}
		previousHash = s.chain[len(s.chain)-1].Hash()
	}

	// The new block takes ownership of the pending transactions and the
	// mempool starts over empty.
	txs := make([]block.Tx, len(s.mempool))
	copy(txs, s.mempool)
	s.mempool = nil

	blk := block.New(uint64(len(s.chain))+1, txs, proof, previousHash)
	s.chain = append(s.chain, blk)

	s.evHandler("state: mintBlock: block[%d] minted: proof[%d] txs[%d]", blk.Index, blk.Proof, len(blk.Transactions))

	return blk, nil
}

// replaceChain swaps the local chain for the candidate wholesale, unless
// the local chain caught up while the candidate was being evaluated. Any
// in-flight mining run was built on the old tip, so the worker is told to
// abandon it.
func (s *State) replaceChain(blocks []block.Block) bool {
	s.mu.Lock()

	if len(blocks) <= len(s.chain) {
		s.mu.Unlock()
		return false
	}

	s.chain = blocks
	s.mu.Unlock()

	if s.Worker != nil {
		s.Worker.SignalCancelMining()
	}

	return true
}
