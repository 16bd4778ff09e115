// Package handler implements the HTTP handlers for the actor vote API.
// All handlers are methods on Server; routes.go binds them to paths and to
// the permission each one requires.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/actorvote/internal/domain"
)

// ActorServicer defines the business operations the actor handlers depend on.
// It is declared here, in the consumer, so handler tests can inject a mock.
type ActorServicer interface {
	Create(ctx context.Context, name string) (domain.Actor, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Actor, error)
	Ranked(ctx context.Context) ([]domain.Actor, error)
	Vote(ctx context.Context, id uuid.UUID, v domain.Vote) (domain.Actor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	actors ActorServicer
	log    *slog.Logger
}

// NewServer constructs the Server. A nil logger falls back to slog.Default.
func NewServer(actors ActorServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{actors: actors, log: log}
}
