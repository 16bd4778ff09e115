// Package domain contains the core data types for the actor vote API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxNameLength is the maximum number of characters in an actor name.
const MaxNameLength = 64

// Actor is the only entity of the API: a named item with a vote tally.
// Vote is changed exclusively through Vote deltas, never assigned directly.
type Actor struct {
	ID        uuid.UUID
	Name      string
	Vote      int
	CreatedAt time.Time // insertion order; breaks ties in rankings
}

// Vote is a single vote cast on an actor. Its Delta is always +1 or -1.
type Vote int

const (
	Upvote   Vote = 1
	Downvote Vote = -1
)

// Delta returns the amount the vote tally moves by.
func (v Vote) Delta() int {
	return int(v)
}

func (v Vote) String() string {
	switch v {
	case Upvote:
		return "upvote"
	case Downvote:
		return "downvote"
	default:
		return fmt.Sprintf("Vote(%d)", int(v))
	}
}

// NormalizeName trims surrounding whitespace and checks the length limit.
// The returned error wraps ErrValidation.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: name must not exceed %d characters", ErrValidation, MaxNameLength)
	}
	return name, nil
}
