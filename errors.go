package pkce

import (
	"errors"
	"fmt"
)

// Error kinds. Every concrete error returned by this package matches exactly
// one of these through errors.Is.
var (
	ErrInvalidLength    = errors.New("pkce: invalid length")
	ErrInvalidCharacter = errors.New("pkce: invalid character")
	ErrInvalidEncoding  = errors.New("pkce: invalid encoding")
	ErrInvalidCount     = errors.New("pkce: invalid byte count")
	ErrUnknownMethod    = errors.New("pkce: unknown method")
)

// Diagnostic is implemented by errors that carry a stable code and a hint for
// tooling that renders rich error reports.
type Diagnostic interface {
	error
	Code() string
	Help() string
}

var (
	_ Diagnostic = &LengthError{}
	_ Diagnostic = &CountError{}
	_ Diagnostic = &CharacterError{}
	_ Diagnostic = &EncodingError{}
	_ Diagnostic = &MethodError{}
	_ Diagnostic = &ParseError{}
)

// LengthError reports a verifier length outside [Min, Max].
type LengthError struct {
	Length int
	Min    int
	Max    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("pkce: verifier length %d out of range [%d, %d]", e.Length, e.Min, e.Max)
}

func (e *LengthError) Is(target error) bool { return target == ErrInvalidLength }

func (e *LengthError) Code() string { return "pkce.verifier.length" }

func (e *LengthError) Help() string {
	return fmt.Sprintf("use a verifier of at least %d and at most %d characters", e.Min, e.Max)
}

// CountError reports a random byte count outside [Min, Max].
type CountError struct {
	Count int
	Min   int
	Max   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("pkce: byte count %d out of range [%d, %d]", e.Count, e.Min, e.Max)
}

func (e *CountError) Is(target error) bool { return target == ErrInvalidCount }

func (e *CountError) Code() string { return "pkce.count" }

func (e *CountError) Help() string {
	return fmt.Sprintf("encode at least %d and at most %d bytes", e.Min, e.Max)
}

// CharacterError reports the first byte that falls outside the expected
// alphabet. Subject is "verifier" or "challenge".
type CharacterError struct {
	Subject  string
	Char     byte
	Position int
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("pkce: %s contains invalid character %q at position %d", e.Subject, e.Char, e.Position)
}

func (e *CharacterError) Is(target error) bool { return target == ErrInvalidCharacter }

func (e *CharacterError) Code() string { return "pkce." + e.Subject + ".character" }

func (e *CharacterError) Help() string {
	if e.Subject == "challenge" {
		return "S256 challenges only contain A-Z a-z 0-9 - _"
	}
	return "verifiers only contain A-Z a-z 0-9 - . _ ~"
}

// EncodingError reports a challenge that is not base64url without padding of
// a SHA-256 digest.
type EncodingError struct {
	Length int
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pkce: challenge is not base64url without padding: %v", e.Err)
	}
	return fmt.Sprintf("pkce: challenge of %d characters does not encode a %d byte digest", e.Length, digestSize)
}

func (e *EncodingError) Is(target error) bool { return target == ErrInvalidEncoding }

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Code() string { return "pkce.challenge.encoding" }

func (e *EncodingError) Help() string {
	return fmt.Sprintf("an S256 challenge is exactly %d base64url characters with no padding", ChallengeLength)
}

// MethodError reports an unrecognised code_challenge_method value.
type MethodError struct {
	Method string
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("pkce: unknown method %q", e.Method)
}

func (e *MethodError) Is(target error) bool { return target == ErrUnknownMethod }

func (e *MethodError) Code() string { return "pkce.method" }

func (e *MethodError) Help() string {
	return fmt.Sprintf("expected %q (recommended) or %q", MethodS256, MethodPlain)
}

// ParseError is returned by ParseLength and ParseCount. Err is either a
// *strconv.NumError or a range error.
type ParseError struct {
	Input string
	What  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pkce: failed to parse %q as %s: %v", e.Input, e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Code() string { return "pkce." + e.What + ".parse" }

func (e *ParseError) Help() string {
	var d Diagnostic
	if errors.As(e.Err, &d) {
		return d.Help()
	}
	return "expected a decimal integer"
}
