package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/actorvote/internal/auth"
	"github.com/pkordes/actorvote/internal/domain"
)

// Routes returns the API router. Every actor route is guarded by the
// permission its action requires; the caller identity must already be in
// the request context (see middleware.NewAuthenticator).
//
// Paths are matched with or without a trailing slash.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/actors", func(r chi.Router) {
		r.With(authorize(auth.ActionList)).Get("/", s.ListActors)
		r.With(authorize(auth.ActionCreate)).Post("/", s.CreateActor)

		r.Route("/{id}", func(r chi.Router) {
			r.With(authorize(auth.ActionRetrieve)).Get("/", s.GetActor)
			r.With(authorize(auth.ActionDestroy)).Delete("/", s.DeleteActor)
			r.With(authorize(auth.ActionUpvote)).Patch("/upvote", s.UpvoteActor)
			r.With(authorize(auth.ActionDownvote)).Patch("/downvote", s.DownvoteActor)
		})
	})

	r.With(authorize(auth.ActionRank)).Get("/rank", s.GetRank)

	return r
}

// authorize rejects the request unless the caller may perform action.
func authorize(action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(action, auth.FromContext(r.Context())); err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, fmt.Errorf("%w: no route for %s", domain.ErrNotFound, r.URL.Path))
}

// methodNotAllowed answers 401 to anonymous callers before 405, so an
// unauthenticated client learns it must log in rather than which methods
// exist.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if !auth.FromContext(r.Context()).IsAuthenticated() {
		WriteError(w, r, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusMethodNotAllowed,
		errorBody("method_not_allowed", fmt.Sprintf("method %s not allowed", r.Method), nil))
}
