package handler

import "net/http"

// GetRank handles GET /rank, a read-only view of the actors ordered by
// vote. It returns the same ordering as ListActors.
func (s *Server) GetRank(w http.ResponseWriter, r *http.Request) {
	s.writeRanked(w, r)
}
