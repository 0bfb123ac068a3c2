package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/llm"
)

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		tooBig  *http.MaxBytesError
		timeout *llm.TimeoutError
	)
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case evaluation.IsInputError(err):
		return http.StatusBadRequest
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}
