package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/actorvote/internal/domain"
)

// ListActors handles GET /actors.
// Actors are returned highest vote first.
func (s *Server) ListActors(w http.ResponseWriter, r *http.Request) {
	s.writeRanked(w, r)
}

// CreateActor handles POST /actors.
func (s *Server) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req CreateActorRequest
	if err := bindJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.actors.Create(r.Context(), req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/actors/"+created.ID.String())
	writeJSON(w, http.StatusCreated, actorToResponse(created))
}

// GetActor handles GET /actors/{id}.
func (s *Server) GetActor(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	actor, err := s.actors.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, actorNotFound(err))
		return
	}

	writeJSON(w, http.StatusOK, actorToResponse(actor))
}

// DeleteActor handles DELETE /actors/{id}.
func (s *Server) DeleteActor(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.actors.Delete(r.Context(), id); err != nil {
		s.fail(w, r, actorNotFound(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpvoteActor handles PATCH /actors/{id}/upvote.
func (s *Server) UpvoteActor(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, domain.Upvote)
}

// DownvoteActor handles PATCH /actors/{id}/downvote.
func (s *Server) DownvoteActor(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, domain.Downvote)
}

// vote looks the actor up, checks the payload shape, then moves the tally
// by one. An unknown actor is 404 whatever the payload. The response is 200
// with an empty body.
func (s *Server) vote(w http.ResponseWriter, r *http.Request, v domain.Vote) {
	id, err := actorID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := s.actors.GetByID(r.Context(), id); err != nil {
		s.fail(w, r, actorNotFound(err))
		return
	}

	var req VoteRequest
	if err := bindJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	actor, err := s.actors.Vote(r.Context(), id, v)
	if err != nil {
		s.fail(w, r, actorNotFound(err))
		return
	}

	s.log.DebugContext(r.Context(), "vote recorded", "actor_id", actor.ID, "vote", v.String(), "tally", actor.Vote)
	w.WriteHeader(http.StatusOK)
}

// writeRanked serves both the actor collection and the rank view.
func (s *Server) writeRanked(w http.ResponseWriter, r *http.Request) {
	actors, err := s.actors.Ranked(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actorsToResponse(actors))
}

// actorID binds the {id} path parameter as a UUID.
func actorID(r *http.Request) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid format for parameter id", domain.ErrValidation)
	}
	return id, nil
}

// actorNotFound gives a not-found error a message naming the resource.
func actorNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: actor not found", err)
	}
	return err
}
