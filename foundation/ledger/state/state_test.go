package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/chain"
	"github.com/tallychain/tallychain/foundation/ledger/genesis"
	"github.com/tallychain/tallychain/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// newState constructs a ledger with a low mining difficulty so tests stay
// fast. No peers and no network.
func newState(t *testing.T, difficulty int) *state.State {
	t.Helper()

	st, err := state.New(state.Config{
		Host: "localhost:9080",
		Genesis: genesis.Genesis{
			Difficulty:   difficulty,
			Proof:        genesis.SentinelProof,
			PreviousHash: genesis.SentinelPreviousHash,
		},
	})
	if err != nil {
		t.Fatalf("unable to construct the state: %v", err)
	}

	return st
}

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to verify a new ledger starts from genesis.")
	{
		t.Logf("\tTest 0:\tWhen constructing a new state.")
		{
			st := newState(t, 2)

			latest, err := st.RetrieveLatestBlock()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould have a latest block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould have a latest block.", success)

			if latest.Index != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould have index 1: got %d", failed, latest.Index)
			}
			if latest.Proof != genesis.SentinelProof {
				t.Fatalf("\t%s\tTest 0:\tShould carry the sentinel proof: got %d", failed, latest.Proof)
			}
			if latest.PreviousHash != genesis.SentinelPreviousHash {
				t.Fatalf("\t%s\tTest 0:\tShould carry the sentinel previous hash: got %q", failed, latest.PreviousHash)
			}
			if len(latest.Transactions) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould hold no transactions: got %d", failed, len(latest.Transactions))
			}
			t.Logf("\t%s\tTest 0:\tShould mint the genesis block with the sentinel values.", success)

			if len(st.RetrieveMempool()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould start with an empty mempool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start with an empty mempool.", success)
		}
	}
}

func Test_SubmitTransaction(t *testing.T) {
	t.Log("Given the need to verify transactions queue for the next block.")
	{
		t.Logf("\tTest 0:\tWhen submitting transactions against a fresh chain.")
		{
			st := newState(t, 2)

			blockNum := st.SubmitTransaction(block.Tx{Sender: "alice", Recipient: "bob", Amount: 5})
			if blockNum != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould target block 2: got %d", failed, blockNum)
			}
			t.Logf("\t%s\tTest 0:\tShould target block 2.", success)

			blockNum = st.SubmitTransaction(block.Tx{Sender: "carol", Recipient: "dave", Amount: 10})
			if blockNum != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould still target block 2: got %d", failed, blockNum)
			}
			t.Logf("\t%s\tTest 0:\tShould still target block 2 before mining runs.", success)

			txs := st.RetrieveMempool()
			if len(txs) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould hold both transactions: got %d", failed, len(txs))
			}
			if txs[0].Sender != "alice" || txs[1].Sender != "carol" {
				t.Fatalf("\t%s\tTest 0:\tShould preserve arrival order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould preserve arrival order in the mempool.", success)
		}
	}
}

func Test_MineBlock(t *testing.T) {
	t.Log("Given the need to verify block assembly.")
	{
		t.Logf("\tTest 0:\tWhen sealing the mempool with a supplied proof.")
		{
			st := newState(t, 2)

			st.SubmitTransaction(block.Tx{Sender: "alice", Recipient: "bob", Amount: 5})
			st.SubmitTransaction(block.Tx{Sender: "carol", Recipient: "dave", Amount: 10})

			genesisBlk, err := st.RetrieveLatestBlock()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould have a latest block: %v", failed, err)
			}

			blk, err := st.MineBlock(12345, "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			if blk.Index != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould mint block 2: got %d", failed, blk.Index)
			}
			if blk.Proof != 12345 {
				t.Fatalf("\t%s\tTest 0:\tShould carry the supplied proof: got %d", failed, blk.Proof)
			}
			if blk.PreviousHash != genesisBlk.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould link to the hash of the previous block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould link to the hash of the previous block.", success)

			if len(blk.Transactions) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould seal both transactions: got %d", failed, len(blk.Transactions))
			}
			if blk.Transactions[0].Sender != "alice" || blk.Transactions[1].Sender != "carol" {
				t.Fatalf("\t%s\tTest 0:\tShould seal the transactions in arrival order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould seal the transactions in arrival order.", success)

			if len(st.RetrieveMempool()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the mempool empty.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the mempool empty.", success)
		}

		t.Logf("\tTest 1:\tWhen sealing an empty mempool.")
		{
			st := newState(t, 2)

			blk, err := st.MineBlock(777, "")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine an empty block: %v", failed, err)
			}

			if len(blk.Transactions) != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould mint a block with no transactions.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould mint a block with no transactions.", success)
		}
	}
}

func Test_MineNewBlock(t *testing.T) {
	t.Log("Given the need to verify the full mining workflow.")
	{
		t.Logf("\tTest 0:\tWhen mining with transactions in the mempool.")
		{
			st := newState(t, 2)

			st.SubmitTransaction(block.Tx{Sender: "alice", Recipient: "bob", Amount: 5})

			blk, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			// The scan is deterministic, so the proof for the genesis proof
			// at difficulty 2 is always the same.
			if blk.Proof != 226 {
				t.Fatalf("\t%s\tTest 0:\tShould find proof 226: got %d", failed, blk.Proof)
			}
			t.Logf("\t%s\tTest 0:\tShould find proof 226.", success)

			if !chain.IsValid(st.RetrieveChain(), 2) {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain valid.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain valid.", success)
		}

		t.Logf("\tTest 1:\tWhen mining with an empty mempool.")
		{
			st := newState(t, 2)

			if _, err := st.MineNewBlock(context.Background()); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to mine: got %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to mine with nothing to seal.", success)
		}

		t.Logf("\tTest 2:\tWhen mining several blocks in sequence.")
		{
			st := newState(t, 2)

			for i := 0; i < 3; i++ {
				st.SubmitTransaction(block.Tx{Sender: "alice", Recipient: "bob", Amount: float64(i)})
				if _, err := st.MineNewBlock(context.Background()); err != nil {
					t.Fatalf("\t%s\tTest 2:\tShould be able to mine block %d: %v", failed, i+2, err)
				}
			}

			blocks := st.RetrieveChain()
			if len(blocks) != 4 {
				t.Fatalf("\t%s\tTest 2:\tShould hold 4 blocks: got %d", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 2:\tShould hold 4 blocks.", success)

			for i, blk := range blocks {
				if blk.Index != uint64(i)+1 {
					t.Fatalf("\t%s\tTest 2:\tShould number blocks sequentially from 1.", failed)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould number blocks sequentially from 1.", success)

			if !chain.IsValid(blocks, 2) {
				t.Fatalf("\t%s\tTest 2:\tShould leave the chain valid.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould leave the chain valid.", success)
		}

		t.Logf("\tTest 3:\tWhen mining is cancelled.")
		{
			st := newState(t, 2)
			st.SubmitTransaction(block.Tx{Sender: "alice", Recipient: "bob", Amount: 5})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := st.MineNewBlock(ctx); err == nil {
				t.Fatalf("\t%s\tTest 3:\tShould give up when the context is cancelled.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould give up when the context is cancelled.", success)

			if st.ChainLength() != 1 {
				t.Fatalf("\t%s\tTest 3:\tShould leave the chain untouched.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould leave the chain untouched.", success)
		}
	}
}
