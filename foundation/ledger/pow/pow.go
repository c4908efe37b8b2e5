// Package pow implements the proof-of-work puzzle that rate limits block
// creation: find a number that, combined with the previous block's proof,
// hashes to a digest with a required run of leading zeros.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DefaultDifficulty is the number of leading zero characters a solution
// digest must carry. Kept at the historical value so proofs stay compatible
// with existing deployments.
const DefaultDifficulty = 4

// match holds the longest supported run of zero characters.
const match = "0000000000000000"

// cancelInterval controls how often Solve polls its context. The check is
// kept off the hot path of every probe.
const cancelInterval = 4096

// IsValid reports whether proof solves the puzzle for lastProof: the hex
// encoded SHA-256 digest of the two proofs' decimal forms, concatenated in
// that order, must start with difficulty zero characters.
func IsValid(lastProof uint64, proof uint64, difficulty int) bool {
	if difficulty < 0 || difficulty > len(match) {
		return false
	}

	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	digest := sha256.Sum256([]byte(guess))
	encoded := hex.EncodeToString(digest[:])

	return encoded[:difficulty] == match[:difficulty]
}

// Solve runs the proof-of-work search for lastProof. The scan starts at zero
// and increments by one, so the smallest solving proof is always the one
// returned. The search is unbounded and CPU heavy; Solve polls ctx
// periodically and abandons the scan when the caller cancels it.
func Solve(ctx context.Context, lastProof uint64, difficulty int) (uint64, error) {
	for proof := uint64(0); ; proof++ {
		if proof%cancelInterval == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}

		if IsValid(lastProof, proof, difficulty) {
			return proof, nil
		}
	}
}
