package handler

import "net/http"

type startRequest struct {
	StartLocation string `json:"startLocation"`
}

type eventRequest struct {
	Label string `json:"label"`
}

type photoRequest struct {
	PhotoURI string `json:"photoUri"`
}

type saveRequest struct {
	Notes string `json:"notes"`
}

// GetRecording handles GET /recording.
func (s *Server) GetRecording(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.recording.Status())
}

// StartRecording handles POST /recording/start. The body is optional.
func (s *Server) StartRecording(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	snap, err := s.recording.Start(req.StartLocation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// AddRecordingEvent handles POST /recording/events.
func (s *Server) AddRecordingEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	ev, err := s.recording.AddEvent(req.Label)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// AttachRecordingPhoto handles PUT /recording/events/{seq}/photo.
// An empty photoUri clears the photo.
func (s *Server) AttachRecordingPhoto(w http.ResponseWriter, r *http.Request) {
	seq, ok := seqParam(w, r)
	if !ok {
		return
	}
	var req photoRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	ev, err := s.recording.AttachPhoto(seq, req.PhotoURI)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// SetRecordingLocation handles PUT /recording/location.
func (s *Server) SetRecordingLocation(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	snap, err := s.recording.SetStartLocation(req.StartLocation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ResetRecording handles POST /recording/reset.
func (s *Server) ResetRecording(w http.ResponseWriter, _ *http.Request) {
	s.recording.Reset()
	writeJSON(w, http.StatusOK, s.recording.Status())
}

// SaveRecording handles POST /recording/save. The body is optional.
func (s *Server) SaveRecording(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	trip, err := s.recording.Save(r.Context(), req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}
