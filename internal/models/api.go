package models

// ErrorResponse carries the plain message string clients get alongside
// the HTTP status. No structured error codes.
type ErrorResponse struct {
	Error string `json:"error"`
}
