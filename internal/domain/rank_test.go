package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/actorvote/internal/domain"
)

func actor(name string, vote int) domain.Actor {
	return domain.Actor{ID: uuid.New(), Name: name, Vote: vote}
}

func names(actors []domain.Actor) []string {
	out := make([]string, len(actors))
	for i, a := range actors {
		out[i] = a.Name
	}
	return out
}

func TestRankActors_OrdersByVoteDescending(t *testing.T) {
	in := []domain.Actor{actor("A1", 0), actor("A2", 2), actor("A3", 1)}

	got := domain.RankActors(in)

	assert.Equal(t, []string{"A2", "A3", "A1"}, names(got))
}

func TestRankActors_TiesKeepInputOrder(t *testing.T) {
	in := []domain.Actor{actor("first", 1), actor("second", 3), actor("third", 1), actor("fourth", -2)}

	got := domain.RankActors(in)

	assert.Equal(t, []string{"second", "first", "third", "fourth"}, names(got))
}

func TestRankActors_DoesNotMutateInput(t *testing.T) {
	in := []domain.Actor{actor("low", 0), actor("high", 5)}

	_ = domain.RankActors(in)

	assert.Equal(t, []string{"low", "high"}, names(in))
}

func TestRankActors_Empty(t *testing.T) {
	got := domain.RankActors(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestRankActors_NonIncreasing checks the ordering property over a mixed set
// including negative tallies.
func TestRankActors_NonIncreasing(t *testing.T) {
	in := []domain.Actor{
		actor("a", -3), actor("b", 7), actor("c", 0), actor("d", 7), actor("e", -1), actor("f", 2),
	}

	got := domain.RankActors(in)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Vote, got[i].Vote, "position %d", i)
	}
}
