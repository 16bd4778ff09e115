// Package repo contains all database access logic for the actor vote API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/actorvote/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ActorRepo defines the persistence operations for Actors.
type ActorRepo interface {
	// Create inserts a new actor with a zero vote tally and returns the
	// persisted record (with DB-generated id and created_at).
	Create(ctx context.Context, name string) (domain.Actor, error)

	// GetByID retrieves a single actor. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Actor, error)

	// List returns all actors in insertion order.
	List(ctx context.Context) ([]domain.Actor, error)

	// AddVote moves the tally of an actor by delta in a single statement and
	// returns the updated record. Returns domain.ErrNotFound if absent.
	AddVote(ctx context.Context, id uuid.UUID, delta int) (domain.Actor, error)

	// Delete removes an actor by ID. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgActorRepo struct {
	db db
}

// NewActorRepo constructs an ActorRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActorRepo(db db) ActorRepo {
	return &pgActorRepo{db: db}
}

func (r *pgActorRepo) Create(ctx context.Context, name string) (domain.Actor, error) {
	const q = `
		INSERT INTO actors (name)
		VALUES (@name)
		RETURNING id, name, vote, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanActor(row)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("repo.ActorRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Actor, error) {
	const q = `
		SELECT id, name, vote, created_at
		FROM actors
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActor(row)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("repo.ActorRepo.GetByID: %w", err)
	}
	return result, nil
}

// List orders by created_at (clock_timestamp at insert) with id as a final
// tie-breaker.
func (r *pgActorRepo) List(ctx context.Context) ([]domain.Actor, error) {
	const q = `
		SELECT id, name, vote, created_at
		FROM actors
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ActorRepo.List: %w", err)
	}
	defer rows.Close()

	actors := []domain.Actor{}
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActorRepo.List: scan: %w", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActorRepo.List: rows: %w", err)
	}

	return actors, nil
}

// AddVote uses vote = vote + delta rather than a read-modify-write so that
// concurrent votes on the same row are serialized by Postgres' row lock.
// A tally that would leave the BIGINT range is rejected as a validation error.
func (r *pgActorRepo) AddVote(ctx context.Context, id uuid.UUID, delta int) (domain.Actor, error) {
	const q = `
		UPDATE actors
		SET vote = vote + @delta
		WHERE id = @id
		RETURNING id, name, vote, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "delta": int64(delta)})
	result, err := scanActor(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == numericValueOutOfRange {
			return domain.Actor{}, fmt.Errorf("repo.ActorRepo.AddVote: %w: vote out of range", domain.ErrValidation)
		}
		return domain.Actor{}, fmt.Errorf("repo.ActorRepo.AddVote: %w", err)
	}
	return result, nil
}

func (r *pgActorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM actors WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActorRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActorRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// numericValueOutOfRange is the SQLSTATE Postgres raises on integer overflow.
const numericValueOutOfRange = "22003"

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanActor(s scanner) (domain.Actor, error) {
	var (
		a    domain.Actor
		id   pgtype.UUID
		vote int64
	)

	if err := s.Scan(&id, &a.Name, &vote, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Actor{}, domain.ErrNotFound
		}
		return domain.Actor{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.Vote = int(vote)
	return a, nil
}
