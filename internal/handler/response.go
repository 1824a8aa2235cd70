package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/community-hub/internal/service"
)

// envelope wraps every JSON response.
type envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code string `json:"code"`
}

// Codes for failures raised by the HTTP layer itself.
const (
	codeBadRequest   = "BAD_REQUEST"
	codeUnauthorized = "UNAUTHORIZED"
	codeRateLimited  = "RATE_LIMITED"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg, Error: &apiError{Code: code}})
}

// writeFailure renders a service error. Anything that is not a
// *service.Failure is reported as a generic internal error.
func writeFailure(w http.ResponseWriter, err error) {
	var f *service.Failure
	if !errors.As(err, &f) {
		writeError(w, http.StatusInternalServerError, string(service.OperationFailed), "An unexpected error occurred")
		return
	}
	writeError(w, statusFor(f.Kind), string(f.Kind), f.Message)
}

func statusFor(k service.Kind) int {
	switch k {
	case service.NotFound:
		return http.StatusNotFound
	case service.NotEligible, service.Forbidden:
		return http.StatusForbidden
	case service.NotBookable, service.AlreadyBooked, service.DuplicateApplication, service.InvalidTransition:
		return http.StatusConflict
	case service.InvalidRating, service.EmptyComment, service.InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
