package handler

import (
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
)

// GetExport handles GET /export.
// ?format= selects json (default), csv or text. The file is served as an
// attachment so browsers download it.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, ok := domain.ParseExportFormat(r.URL.Query().Get("format"))
	if !ok {
		requestError(w, "format must be one of json, csv, text")
		return
	}

	file, err := s.export.Export(r.Context(), format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(file.Body)
}
