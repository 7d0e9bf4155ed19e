// Package pairing expands a group's member list into the full directed
// reviewer→target pairing set. It is pure and persistence-free so the
// n·(n−1) expansion can be tested on its own.
package pairing

import "go.mongodb.org/mongo-driver/bson/primitive"

// Pair is one directed review task: Reviewer rates Target.
type Pair struct {
	Reviewer primitive.ObjectID
	Target   primitive.ObjectID
}

// Expand returns every ordered pair (i, j), i ≠ j, over members. The output
// order is deterministic: reviewers in input order, and for each reviewer
// its targets in input order. A list of zero or one members yields no pairs.
func Expand(members []primitive.ObjectID) []Pair {
	n := len(members)
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1))
	for i, reviewer := range members {
		for j, target := range members {
			if i == j {
				continue
			}
			pairs = append(pairs, Pair{Reviewer: reviewer, Target: target})
		}
	}
	return pairs
}

// Count returns the number of pairs Expand produces for a group of size n
// without materializing them.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1)
}
