package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/triplog/internal/domain"
)

type notesRequest struct {
	Notes string `json:"notes"`
}

// ListTrips handles GET /trips.
// Supports ?q= (case-insensitive search) and ?sort= (newest, oldest,
// longest, shortest, most_events; default newest).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := domain.NewListQuery(r.URL.Query().Get("q"), r.URL.Query().Get("sort"))
	trips, err := s.trips.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTripNotes handles PUT /trips/{id}/notes.
func (s *Server) UpdateTripNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	trip, err := s.trips.UpdateNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// RenameTripEvent handles PUT /trips/{id}/events/{seq}.
func (s *Server) RenameTripEvent(w http.ResponseWriter, r *http.Request) {
	seq, ok := seqParam(w, r)
	if !ok {
		return
	}
	var req eventRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	trip, err := s.trips.RenameEvent(r.Context(), chi.URLParam(r, "id"), seq, req.Label)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTripEvent handles DELETE /trips/{id}/events/{seq}.
// Later events are renumbered and the summary is rebuilt; the updated
// trip is returned.
func (s *Server) DeleteTripEvent(w http.ResponseWriter, r *http.Request) {
	seq, ok := seqParam(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.DeleteEvent(r.Context(), chi.URLParam(r, "id"), seq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// SetTripEventPhoto handles PUT /trips/{id}/events/{seq}/photo.
func (s *Server) SetTripEventPhoto(w http.ResponseWriter, r *http.Request) {
	seq, ok := seqParam(w, r)
	if !ok {
		return
	}
	var req photoRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	trip, err := s.trips.SetEventPhoto(r.Context(), chi.URLParam(r, "id"), seq, req.PhotoURI)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
