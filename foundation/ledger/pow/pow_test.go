package pow_test

import (
	"context"
	"testing"

	"github.com/tallychain/tallychain/foundation/ledger/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Solve(t *testing.T) {
	type table struct {
		name       string
		lastProof  uint64
		difficulty int
		proof      uint64
	}

	// These solutions are fixed for all time. A different answer means the
	// puzzle changed and the chain forked from every existing deployment.
	tt := []table{
		{"genesis", 100, 4, 35293},
		{"second", 35293, 4, 35089},
		{"third", 35089, 4, 119678},
		{"zero", 0, 4, 69732},
		{"easy1", 100, 1, 16},
		{"easy2", 100, 2, 226},
		{"easy3", 100, 3, 6016},
	}

	t.Log("Given the need to verify the proof of work search.")
	{
		for testID, tst := range tt {
			tf := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen solving against last proof %d at difficulty %d.", testID, tst.lastProof, tst.difficulty)
				{
					proof, err := pow.Solve(context.Background(), tst.lastProof, tst.difficulty)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to solve the puzzle: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to solve the puzzle.", success, testID)

					if proof != tst.proof {
						t.Fatalf("\t%s\tTest %d:\tShould get proof %d: got %d", failed, testID, tst.proof, proof)
					}
					t.Logf("\t%s\tTest %d:\tShould get proof %d.", success, testID, tst.proof)

					if !pow.IsValid(tst.lastProof, proof, tst.difficulty) {
						t.Fatalf("\t%s\tTest %d:\tShould report the solution as valid.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould report the solution as valid.", success, testID)
				}
			}

			t.Run(tst.name, tf)
		}
	}
}

func Test_SolveReturnsSmallest(t *testing.T) {
	t.Log("Given the need to verify the search is deterministic.")
	{
		t.Logf("\tTest 0:\tWhen scanning every value below the known solution.")
		{
			const lastProof = 100
			const solution = 226
			const difficulty = 2

			for proof := uint64(0); proof < solution; proof++ {
				if pow.IsValid(lastProof, proof, difficulty) {
					t.Fatalf("\t%s\tTest 0:\tShould find no solution below %d: found %d", failed, solution, proof)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould find no solution below %d.", success, solution)
		}
	}
}

func Test_IsValid(t *testing.T) {
	t.Log("Given the need to verify proof validation edge cases.")
	{
		t.Logf("\tTest 0:\tWhen the proof does not solve the puzzle.")
		{
			if pow.IsValid(100, 35292, 4) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a near miss.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a near miss.", success)
		}

		t.Logf("\tTest 1:\tWhen the difficulty rises past the solution's zeros.")
		{
			if pow.IsValid(100, 16, 2) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a difficulty 1 proof at difficulty 2.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a difficulty 1 proof at difficulty 2.", success)
		}

		t.Logf("\tTest 2:\tWhen the difficulty is out of range.")
		{
			if pow.IsValid(100, 35293, 65) {
				t.Fatalf("\t%s\tTest 2:\tShould reject an unachievable difficulty.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject an unachievable difficulty.", success)

			if pow.IsValid(100, 35293, -1) {
				t.Fatalf("\t%s\tTest 2:\tShould reject a negative difficulty.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a negative difficulty.", success)
		}
	}
}

func Test_SolveCancel(t *testing.T) {
	t.Log("Given the need to verify a solve can be abandoned.")
	{
		t.Logf("\tTest 0:\tWhen the context is already cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := pow.Solve(ctx, 100, 16); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould give up and return the context error.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould give up and return the context error.", success)
		}
	}
}
