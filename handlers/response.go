package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shootboard/repository"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before touching the response, so an unencodable value
// is answered with a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	if log == nil {
		log = zap.NewNop()
	}
	body, err := json.Marshal(v)
	if err != nil {
		log.Error("encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "Internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, nil, status, errorResponse{Error: msg})
}

// writeStoreError maps repository errors onto status codes. Only unexpected
// errors are logged at error level; their detail never reaches the client.
func writeStoreError(w http.ResponseWriter, log *zap.Logger, err error, notFound, internal string) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		log.Debug("validation failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), repository.ErrValidation.Error()+": "))
	case errors.Is(err, repository.ErrNotFound):
		log.Debug("not found", zap.Error(err))
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrConflict):
		log.Debug("conflict", zap.Error(err))
		writeError(w, http.StatusConflict, "Already exists")
	default:
		log.Error(internal, zap.Error(err))
		writeError(w, http.StatusInternalServerError, internal)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request, key string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, key), 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an optional integer query parameter. Present but
// non-numeric values are rejected.
func queryInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return v, true
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
