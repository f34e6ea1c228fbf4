package handler

import "net/http"

type restoreResponse struct {
	Restored int `json:"restored"`
}

// GetBackup handles GET /backup.
func (s *Server) GetBackup(w http.ResponseWriter, r *http.Request) {
	b, err := s.backup.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="trips_backup_`+b.ExportDate.Format("20060102T150405Z")+`.json"`)
	writeJSON(w, http.StatusOK, b)
}

// RestoreBackup handles POST /backup. The body is a backup file as
// returned by GET /backup; every stored trip is replaced by its contents.
func (s *Server) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	n, err := s.backup.Restore(r.Context(), r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restoreResponse{Restored: n})
}
