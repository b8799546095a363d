package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const (
	msgInternal    = "Internal server error"
	msgBadBody     = "Invalid request body"
	msgBodyTooBig  = "Request body too large"
	msgUnauthorize = "Unauthorized"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func messageResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}

// writeInternal logs err and answers with a generic 500 that leaks nothing.
func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, messageResponse(msgInternal))
}

// decodeBody reads a JSON body of at most limit bytes into dst. On failure
// it writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageResponse(msgBodyTooBig))
			return false
		}
		writeJSON(w, http.StatusBadRequest, messageResponse(msgBadBody))
		return false
	}
	return true
}

// storeContext keeps request values but drops cancellation, so a client
// disconnect does not abort a store call that is already under way.
func storeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
