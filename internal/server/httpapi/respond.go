package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind string) int {
	switch kind {
	case "invalid_input", "already_exists":
		return http.StatusBadRequest
	case "invalid_credentials", "token_missing", "token_expired", "token_invalid":
		return http.StatusUnauthorized
	case "not_found":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.Kind(err)
	status := statusFor(kind)

	msg := err.Error()
	if kind == "internal" {
		s.logger.Error(r.Context(), "request failed",
			"error", err.Error(),
			"request_id", middleware.GetReqID(r.Context()),
		)
		msg = common.ErrInternal.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: kind})
}

// decodeJSON reads a bounded JSON body into dst. Any decoding problem is
// reported as common.ErrInvalidInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return fmt.Errorf("%w: request body exceeds %d bytes", common.ErrInvalidInput, mbe.Limit)
		}
		return fmt.Errorf("%w: malformed JSON body: %w", common.ErrInvalidInput, err)
	}
	return nil
}
