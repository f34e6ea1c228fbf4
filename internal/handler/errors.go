package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/triplog/internal/domain"
)

// errorBody is the JSON envelope of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error kind onto its HTTP status.
func statusFor(kind string) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindInvalidState, domain.KindNothingToSave:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client has gone away; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// writeError classifies err with domain.Kind and writes the matching
// status and error envelope. Server-side failures are logged and their
// detail is not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if isBodyTooLarge(err) {
		bodyTooLarge(w)
		return
	}
	kind := domain.Kind(err)
	status := statusFor(kind)

	msg := unwrapMessage(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "kind", kind, "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: kind, Message: msg}})
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (e.g. malformed body or path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorBody{Error: errorDetail{Code: domain.KindValidation, Message: message}})
}

// isBodyTooLarge reports whether err came from a body cut off by
// http.MaxBytesReader. Bodies without a Content-Length only fail there.
func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

func bodyTooLarge(w http.ResponseWriter) {
	writeJSON(w, http.StatusRequestEntityTooLarge,
		errorBody{Error: errorDetail{Code: domain.KindValidation, Message: "request body too large"}})
}

// unwrapMessage drops the "pkg.Type.Method: " operation prefixes that
// wrapping adds, leaving the human-readable part of the error.
// e.g. "service.TripService.RenameEvent: validation error: label is required"
// → "validation error: label is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || !strings.Contains(head, ".") || strings.ContainsAny(head, " \t") {
			return msg
		}
		msg = rest
	}
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched when optional is true. It writes the error response itself and
// reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		if optional {
			return true
		}
		requestError(w, "request body is required")
	default:
		if isBodyTooLarge(err) {
			bodyTooLarge(w)
			return false
		}
		requestError(w, "malformed request body: "+err.Error())
	}
	return false
}

// seqParam parses the {seq} path parameter. It writes a 422 and returns
// false when the value is not a positive integer.
func seqParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil || seq < 1 {
		requestError(w, "event id must be a positive integer")
		return 0, false
	}
	return seq, true
}
