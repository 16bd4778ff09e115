package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/actorvote/internal/auth"
	"github.com/pkordes/actorvote/internal/domain"
	"github.com/pkordes/actorvote/internal/handler"
	"github.com/pkordes/actorvote/internal/middleware"
)

var tokens = auth.NewTokenService([]byte("handler-test-secret"), "actorvote-test")

// newHTTPHandler wires a Server with svc behind the authenticator, the same
// way main.go does.
func newHTTPHandler(svc handler.ActorServicer) http.Handler {
	srv := handler.NewServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(middleware.NewAuthenticator(tokens, handler.WriteError))
	r.Mount("/", srv.Routes())
	return r
}

// do sends a request as the given role. auth.Anonymous sends no token.
func do(t *testing.T, h http.Handler, role auth.Role, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != auth.Anonymous {
		raw, err := tokens.Issue("subject-"+role.String(), role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// fakeActors is an in-memory handler.ActorServicer that keeps insertion
// order and applies the real domain rules for names and ranking.
type fakeActors struct {
	rows []domain.Actor
}

var _ handler.ActorServicer = (*fakeActors)(nil)

func (f *fakeActors) Create(_ context.Context, name string) (domain.Actor, error) {
	name, err := domain.NormalizeName(name)
	if err != nil {
		return domain.Actor{}, err
	}
	a := domain.Actor{ID: uuid.New(), Name: name}
	f.rows = append(f.rows, a)
	return a, nil
}

func (f *fakeActors) GetByID(_ context.Context, id uuid.UUID) (domain.Actor, error) {
	if i := f.index(id); i >= 0 {
		return f.rows[i], nil
	}
	return domain.Actor{}, domain.ErrNotFound
}

func (f *fakeActors) Ranked(_ context.Context) ([]domain.Actor, error) {
	return domain.RankActors(f.rows), nil
}

func (f *fakeActors) Vote(_ context.Context, id uuid.UUID, v domain.Vote) (domain.Actor, error) {
	i := f.index(id)
	if i < 0 {
		return domain.Actor{}, domain.ErrNotFound
	}
	f.rows[i].Vote += v.Delta()
	return f.rows[i], nil
}

func (f *fakeActors) Delete(_ context.Context, id uuid.UUID) error {
	i := f.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func (f *fakeActors) index(id uuid.UUID) int {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// seed creates an actor directly in the fake, bypassing HTTP.
func (f *fakeActors) seed(t *testing.T, name string) domain.Actor {
	t.Helper()
	a, err := f.Create(context.Background(), name)
	require.NoError(t, err)
	return a
}

// mockActorServicer is a func-field test double for cases that need to
// inject errors or observe arguments. Set only the fields your test needs.
type mockActorServicer struct {
	create  func(ctx context.Context, name string) (domain.Actor, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Actor, error)
	ranked  func(ctx context.Context) ([]domain.Actor, error)
	vote    func(ctx context.Context, id uuid.UUID, v domain.Vote) (domain.Actor, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActorServicer) Create(ctx context.Context, name string) (domain.Actor, error) {
	return m.create(ctx, name)
}
func (m *mockActorServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Actor, error) {
	return m.getByID(ctx, id)
}
func (m *mockActorServicer) Ranked(ctx context.Context) ([]domain.Actor, error) {
	return m.ranked(ctx)
}
func (m *mockActorServicer) Vote(ctx context.Context, id uuid.UUID, v domain.Vote) (domain.Actor, error) {
	return m.vote(ctx, id, v)
}
func (m *mockActorServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ActorServicer = (*mockActorServicer)(nil)
