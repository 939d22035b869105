package ledgerapi

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the record-keeping API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger api: %d %s", e.StatusCode, e.Message)
}

// NotFound reports whether the server answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unauthorized reports whether the server rejected the credential
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ErrorResponse is the error body shape used by the API
type ErrorResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

func (r ErrorResponse) message() string {
	if r.Msg != "" {
		return r.Msg
	}
	return r.Error
}
