// Package pkce implements Proof Key for Code Exchange (RFC 7636) values:
// code verifiers, the challenges derived from them, and verification of a
// presented verifier against a previously issued challenge.
//
// Every Verifier and Challenge obtained from this package is valid by
// construction. Values are immutable and safe for concurrent use.
package pkce

import (
	"fmt"
	"strconv"
)

const (
	// MinLength and MaxLength bound the verifier length (RFC 7636 §4.1).
	MinLength = 43
	MaxLength = 128

	// DefaultLength is the verifier length used when none is given. It matches
	// the length of DefaultCount random bytes encoded as base64url, well above
	// the RFC minimum.
	DefaultLength = 86

	// MinCount, MaxCount and DefaultCount bound the number of random bytes
	// encoded by GenerateEncodedVerifier. Their encoded lengths are 43, 128
	// and 86.
	MinCount     = 32
	MaxCount     = 96
	DefaultCount = 64

	// ChallengeLength is the length of every S256 challenge.
	ChallengeLength = 43

	digestSize = 32
)

// CheckLength reports whether n is a valid verifier length.
func CheckLength(n int) error {
	if n < MinLength || n > MaxLength {
		return &LengthError{Length: n, Min: MinLength, Max: MaxLength}
	}
	return nil
}

// CheckCount reports whether n is a valid random byte count.
func CheckCount(n int) error {
	if n < MinCount || n > MaxCount {
		return &CountError{Count: n, Min: MinCount, Max: MaxCount}
	}
	return nil
}

// EncodedLength returns the base64url (no padding) length of n bytes, or 0
// when n is not positive.
func EncodedLength(n int) int {
	if n <= 0 {
		return 0
	}
	return n/3*4 + [3]int{0, 2, 3}[n%3]
}

// ParseLength parses a decimal verifier length.
func ParseLength(s string) (int, error) {
	return parseBounded(s, "length", CheckLength)
}

// ParseCount parses a decimal random byte count.
func ParseCount(s string) (int, error) {
	return parseBounded(s, "count", CheckCount)
}

func parseBounded(s, what string, check func(int) error) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Input: s, What: what, Err: err}
	}
	if err := check(n); err != nil {
		return 0, &ParseError{Input: s, What: what, Err: err}
	}
	return n, nil
}

func wrapEntropy(err error) error {
	return fmt.Errorf("pkce: failed to read random bytes: %w", err)
}
