package chain_test

import (
	"context"
	"testing"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/chain"
	"github.com/tallychain/tallychain/foundation/ledger/genesis"
	"github.com/tallychain/tallychain/foundation/ledger/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// The tests mine at a low difficulty so the proofs stay cheap.
const difficulty = 2

// buildChain mines a chain of the requested length, one transaction per
// block after genesis.
func buildChain(t *testing.T, length int) []block.Block {
	t.Helper()

	blocks := []block.Block{
		block.New(1, nil, genesis.SentinelProof, genesis.SentinelPreviousHash),
	}

	for len(blocks) < length {
		last := blocks[len(blocks)-1]

		proof, err := pow.Solve(context.Background(), last.Proof, difficulty)
		if err != nil {
			t.Fatalf("unable to solve the puzzle: %v", err)
		}

		txs := []block.Tx{{Sender: "alice", Recipient: "bob", Amount: float64(len(blocks))}}
		blocks = append(blocks, block.New(last.Index+1, txs, proof, last.Hash()))
	}

	return blocks
}

func Test_IsValid(t *testing.T) {
	t.Log("Given the need to verify chain validation.")
	{
		t.Logf("\tTest 0:\tWhen checking a freshly mined chain.")
		{
			blocks := buildChain(t, 4)

			if !chain.IsValid(blocks, difficulty) {
				t.Fatalf("\t%s\tTest 0:\tShould report a mined chain as valid.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report a mined chain as valid.", success)
		}

		t.Logf("\tTest 1:\tWhen checking a chain holding only the genesis block.")
		{
			blocks := buildChain(t, 1)

			if !chain.IsValid(blocks, difficulty) {
				t.Fatalf("\t%s\tTest 1:\tShould report a single block chain as valid.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould report a single block chain as valid.", success)
		}

		t.Logf("\tTest 2:\tWhen checking an empty chain.")
		{
			if !chain.IsValid(nil, difficulty) {
				t.Fatalf("\t%s\tTest 2:\tShould report an empty chain as valid.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould report an empty chain as valid.", success)
		}
	}
}

func Test_IsValidTampering(t *testing.T) {
	tamper := []struct {
		name string
		mut  func(blocks []block.Block)
	}{
		{"transaction amount", func(blocks []block.Block) {
			blocks[1].Transactions[0].Amount += 1000
		}},
		{"transaction recipient", func(blocks []block.Block) {
			blocks[1].Transactions[0].Recipient = "mallory"
		}},
		{"proof", func(blocks []block.Block) {
			blocks[2].Proof++
		}},
		{"previous hash", func(blocks []block.Block) {
			blocks[2].PreviousHash = blocks[0].Hash()
		}},
		{"timestamp", func(blocks []block.Block) {
			blocks[1].Timestamp++
		}},
		{"missing fields", func(blocks []block.Block) {
			blocks[1] = block.Block{Index: 2}
		}},
	}

	t.Log("Given the need to verify tampered chains are rejected.")
	{
		for testID, tst := range tamper {
			tf := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen the %s of a block changes after mining.", testID, tst.name)
				{
					blocks := buildChain(t, 4)
					tst.mut(blocks)

					if chain.IsValid(blocks, difficulty) {
						t.Fatalf("\t%s\tTest %d:\tShould reject the tampered chain.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject the tampered chain.", success, testID)
				}
			}

			t.Run(tst.name, tf)
		}
	}
}
