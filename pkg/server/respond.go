package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/flighttree/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Warning bool        `json:"warning,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError maps err to an HTTP status and writes a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    code,
		Message: errors.UserMessage(err),
		Warning: errors.IsWarning(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidCount,
		errors.ErrCodeInvalidQuery, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAction,
		errors.ErrCodeNoInput, errors.ErrCodeEmptyQuery:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeDatasetNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStore:
		return http.StatusServiceUnavailable
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
