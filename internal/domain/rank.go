package domain

import "sort"

// RankActors returns a copy of actors ordered by vote, highest first.
// The sort is stable: actors with equal votes keep their input order, so
// passing insertion-ordered actors yields insertion order within a tie.
// The input slice is not modified.
func RankActors(actors []Actor) []Actor {
	ranked := make([]Actor, len(actors))
	copy(ranked, actors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Vote > ranked[j].Vote
	})
	return ranked
}
