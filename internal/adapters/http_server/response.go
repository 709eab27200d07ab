package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// envelope is the body of every hotels response. Data is left out of
// validation errors and kept as {} on not-found.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Hotel with id %s is not found or has not been created", id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeEnvelope(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Message: msg, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Message: msg})
}

func writeNotFound(w http.ResponseWriter, id string) {
	writeEnvelope(w, http.StatusNotFound, notFoundMessage(id), struct{}{})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable serves a 200 envelope with a weak ETag, or 304 when the
// client already holds that version.
func writeCacheable(w http.ResponseWriter, r *http.Request, msg string, data any) {
	etag, body := calcETagAndBody(envelope{Message: msg, Data: data})
	if body == nil {
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
