package oserver

import (
	"encoding/json"
	"errors"
	"net/http"
)

// OAuth error codes (RFC 6749 §4.1.2.1, §5.2).
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidGrant   = "invalid_grant"
)

var (
	ErrMissingChallenge   = errors.New("oserver: code_challenge is required")
	ErrMissingVerifier    = errors.New("oserver: code_verifier is required")
	ErrMethodNoChallenge  = errors.New("oserver: code_challenge_method without code_challenge")
	ErrPlainNotAllowed    = errors.New("oserver: code_challenge_method plain is not allowed")
	ErrUnexpectedVerifier = errors.New("oserver: code_verifier sent for a grant without code_challenge")
	ErrVerifierMismatch   = errors.New("oserver: code_verifier does not match code_challenge")
)

// Error is an OAuth protocol error wrapping the cause.
type Error struct {
	Code        string
	Description string
	Err         error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

func (e *Error) Unwrap() error { return e.Err }

func invalidRequest(desc string, err error) *Error {
	return &Error{Code: CodeInvalidRequest, Description: desc, Err: err}
}

func invalidGrant(desc string, err error) *Error {
	return &Error{Code: CodeInvalidGrant, Description: desc, Err: err}
}

// WriteError writes err as an RFC 6749 §5.2 JSON error response. Errors that
// are not *Error are reported as invalid_request.
func WriteError(w http.ResponseWriter, err error) {
	var oe *Error
	if !errors.As(err, &oe) {
		oe = invalidRequest(err.Error(), err)
	}
	w.Header().Set("Content-Type", string(ContentTypeJSON))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             oe.Code,
		"error_description": oe.Description,
	})
}
