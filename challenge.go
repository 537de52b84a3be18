package pkce

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"strings"
)

// Challenge is a PKCE code challenge together with the method that produced
// it. Challenges are safe to transmit and store.
type Challenge struct {
	value  string
	method Method
}

var challengeEncoding = base64.RawURLEncoding.Strict()

func derive(verifier string, m Method) Challenge {
	if m == Plain {
		return Challenge{value: verifier, method: Plain}
	}
	sum := sha256.Sum256([]byte(verifier))
	return Challenge{value: base64.RawURLEncoding.EncodeToString(sum[:]), method: S256}
}

// ParseChallenge accepts a stored or transmitted S256 challenge. It only
// checks the shape of s; trust comes from Verify.
func ParseChallenge(s string) (Challenge, error) {
	return ParseChallengeWith(s, S256)
}

// ParseChallengeWith accepts a challenge for the given method. A plain
// challenge must satisfy the verifier rules since it is the verifier.
func ParseChallengeWith(s string, m Method) (Challenge, error) {
	if !m.valid() {
		return Challenge{}, &MethodError{Method: m.String()}
	}
	if m == Plain {
		if err := checkVerifier(s); err != nil {
			return Challenge{}, err
		}
		return Challenge{value: s, method: Plain}, nil
	}
	if err := checkChars(s, "challenge", isChallengeChar); err != nil {
		return Challenge{}, err
	}
	if len(s) != ChallengeLength {
		return Challenge{}, &EncodingError{Length: len(s)}
	}
	// Strict rejects non-zero trailing bits, so a parsed challenge always
	// re-encodes to the same string.
	if _, err := challengeEncoding.DecodeString(s); err != nil {
		return Challenge{}, &EncodingError{Length: len(s), Err: err}
	}
	return Challenge{value: s, method: S256}, nil
}

func (c Challenge) String() string { return c.value }

func (c Challenge) Method() Method { return c.method }

func (c Challenge) IsZero() bool { return c.value == "" }

// Verify reports whether v derives to c. Derivation uses c's method and the
// comparison runs in constant time.
func (c Challenge) Verify(v Verifier) bool {
	return v.Verify(c)
}

// Equal compares both the method and the value, the latter in constant time.
func (c Challenge) Equal(o Challenge) bool {
	same := subtle.ConstantTimeCompare([]byte(c.value), []byte(o.value))
	return same&subtle.ConstantTimeByteEq(uint8(c.method), uint8(o.method)) == 1
}

// plainPrefix marks the text form of a plain challenge. ':' is outside both
// alphabets so the prefix cannot be mistaken for part of a value.
const plainPrefix = MethodPlain + ":"

// MarshalText returns the challenge value, prefixed with "plain:" for a plain
// challenge. The zero Challenge marshals to empty text.
func (c Challenge) MarshalText() ([]byte, error) {
	if c.method == Plain {
		return []byte(plainPrefix + c.value), nil
	}
	return []byte(c.value), nil
}

// UnmarshalText reads the form written by MarshalText. Bare text is an S256
// challenge and empty text yields the zero Challenge.
func (c *Challenge) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Challenge{}
		return nil
	}
	s, m := string(text), S256
	if rest, ok := strings.CutPrefix(s, plainPrefix); ok {
		s, m = rest, Plain
	}
	parsed, err := ParseChallengeWith(s, m)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Challenge) LogValue() slog.Value {
	if c.method == Plain {
		// a plain challenge is the verifier itself
		return slog.GroupValue(
			slog.String("method", MethodPlain),
			slog.String("value", redacted),
		)
	}
	return slog.GroupValue(
		slog.String("method", MethodS256),
		slog.String("value", c.value),
	)
}
