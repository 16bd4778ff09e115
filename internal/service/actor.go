// Package service contains the business logic for the actor vote API.
// Services validate inputs and orchestrate repo calls; no SQL lives here.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/actorvote/internal/domain"
	"github.com/pkordes/actorvote/internal/repo"
)

// ActorService implements business logic for Actor operations.
type ActorService struct {
	repo repo.ActorRepo
}

// NewActorService constructs an ActorService backed by the provided ActorRepo.
func NewActorService(r repo.ActorRepo) *ActorService {
	return &ActorService{repo: r}
}

// Create validates the name and persists a new actor with a zero tally.
func (s *ActorService) Create(ctx context.Context, name string) (domain.Actor, error) {
	name, err := domain.NormalizeName(name)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("service.ActorService.Create: %w", err)
	}

	actor, err := s.repo.Create(ctx, name)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("service.ActorService.Create: %w", err)
	}
	return actor, nil
}

// GetByID returns a single actor.
func (s *ActorService) GetByID(ctx context.Context, id uuid.UUID) (domain.Actor, error) {
	actor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("service.ActorService.GetByID: %w", err)
	}
	return actor, nil
}

// Ranked returns every actor ordered by vote, highest first. Ties keep the
// repo's insertion order.
func (s *ActorService) Ranked(ctx context.Context) ([]domain.Actor, error) {
	actors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ActorService.Ranked: %w", err)
	}
	return domain.RankActors(actors), nil
}

// Vote applies a single upvote or downvote and returns the updated actor.
func (s *ActorService) Vote(ctx context.Context, id uuid.UUID, v domain.Vote) (domain.Actor, error) {
	if v != domain.Upvote && v != domain.Downvote {
		return domain.Actor{}, fmt.Errorf("service.ActorService.Vote: %w: unknown vote %d", domain.ErrValidation, int(v))
	}

	actor, err := s.repo.AddVote(ctx, id, v.Delta())
	if err != nil {
		return domain.Actor{}, fmt.Errorf("service.ActorService.Vote: %w", err)
	}
	return actor, nil
}

// Delete removes an actor by ID.
func (s *ActorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActorService.Delete: %w", err)
	}
	return nil
}
