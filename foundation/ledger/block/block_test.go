package block_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tallychain/tallychain/foundation/ledger/block"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// Digests for blocks with pinned field values. Any change to the canonical
// serialization breaks chain compatibility and fails these.
const (
	genesisDigest  = "9e4f50495b6bcf9b7487c57900ac18b73a9f6b3b7cc1178871f3ad3dfdad7eb3"
	blockTwoDigest = "8edd5f05cc11474d6882632e67bffbe8c2599fd7815d58a9011968d1846fa721"
)

func Test_Hash(t *testing.T) {
	t.Log("Given the need to verify block hashing is canonical and stable.")
	{
		t.Logf("\tTest 0:\tWhen hashing a block with pinned field values.")
		{
			b := block.Block{
				Index:        1,
				Timestamp:    1506057125.900785,
				Transactions: []block.Tx{},
				Proof:        100,
				PreviousHash: "1",
			}

			if h := b.Hash(); h != genesisDigest {
				t.Fatalf("\t%s\tTest 0:\tShould get the pinned digest: got %s", failed, h)
			}
			t.Logf("\t%s\tTest 0:\tShould get the pinned digest.", success)

			b2 := block.Block{
				Index:     2,
				Timestamp: 1506057126.51,
				Transactions: []block.Tx{
					{Sender: "alice", Recipient: "bob", Amount: 5},
					{Sender: "carol", Recipient: "dave", Amount: 10},
				},
				Proof:        35293,
				PreviousHash: genesisDigest,
			}

			if h := b2.Hash(); h != blockTwoDigest {
				t.Fatalf("\t%s\tTest 0:\tShould get the pinned digest for a block with transactions: got %s", failed, h)
			}
			t.Logf("\t%s\tTest 0:\tShould get the pinned digest for a block with transactions.", success)
		}

		t.Logf("\tTest 1:\tWhen hashing the same block twice.")
		{
			b := block.New(3, []block.Tx{{Sender: "alice", Recipient: "bob", Amount: 1.5}}, 42, genesisDigest)

			if b.Hash() != b.Hash() {
				t.Fatalf("\t%s\tTest 1:\tShould get the same digest both times.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get the same digest both times.", success)

			cpy := b
			if cpy.Hash() != b.Hash() {
				t.Fatalf("\t%s\tTest 1:\tShould get the same digest for a copy.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get the same digest for a copy.", success)
		}

		t.Logf("\tTest 2:\tWhen any field of the block changes.")
		{
			b := block.Block{
				Index:        2,
				Timestamp:    1506057126.51,
				Transactions: []block.Tx{{Sender: "alice", Recipient: "bob", Amount: 5}},
				Proof:        35293,
				PreviousHash: genesisDigest,
			}
			base := b.Hash()

			mutations := map[string]block.Block{}

			mut := b
			mut.Index = 3
			mutations["index"] = mut

			mut = b
			mut.Timestamp = 1506057126.52
			mutations["timestamp"] = mut

			mut = b
			mut.Proof = 35294
			mutations["proof"] = mut

			mut = b
			mut.PreviousHash = "1"
			mutations["previous_hash"] = mut

			mut = b
			mut.Transactions = []block.Tx{{Sender: "alice", Recipient: "bob", Amount: 6}}
			mutations["transactions"] = mut

			for field, m := range mutations {
				if m.Hash() == base {
					t.Fatalf("\t%s\tTest 2:\tShould get a different digest when %q changes.", failed, field)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould get a different digest for every field change.", success)
		}

		t.Logf("\tTest 3:\tWhen the same document arrives with keys in a different order.")
		{
			doc1 := `{"index":1,"timestamp":1506057125.900785,"transactions":[],"proof":100,"previous_hash":"1"}`
			doc2 := `{"previous_hash":"1","proof":100,"transactions":[],"timestamp":1506057125.900785,"index":1}`

			var b1, b2 block.Block
			if err := json.Unmarshal([]byte(doc1), &b1); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould decode the first document: %v", failed, err)
			}
			if err := json.Unmarshal([]byte(doc2), &b2); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould decode the second document: %v", failed, err)
			}

			if b1.Hash() != b2.Hash() {
				t.Fatalf("\t%s\tTest 3:\tShould get the same digest regardless of key order.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould get the same digest regardless of key order.", success)
		}

		t.Logf("\tTest 4:\tWhen checking the shape of the digest.")
		{
			h := block.New(1, nil, 100, "1").Hash()

			if len(h) != 64 {
				t.Fatalf("\t%s\tTest 4:\tShould get a 64 character digest: got %d.", failed, len(h))
			}
			t.Logf("\t%s\tTest 4:\tShould get a 64 character digest.", success)

			if h != strings.ToLower(h) {
				t.Fatalf("\t%s\tTest 4:\tShould get lowercase hex.", failed)
			}
			if strings.HasPrefix(h, "0x") {
				t.Fatalf("\t%s\tTest 4:\tShould not carry a 0x prefix.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould get plain lowercase hex.", success)
		}
	}
}
