package pkce

import (
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
)

// Verifier is a PKCE code verifier: the secret half of the exchange. The zero
// Verifier is not valid; it never verifies any challenge.
type Verifier struct {
	value string
}

// ParseVerifier validates s and returns it as a Verifier. Length is checked
// before characters, so an over-long string with bad characters reports
// ErrInvalidLength.
func ParseVerifier(s string) (Verifier, error) {
	if err := checkVerifier(s); err != nil {
		return Verifier{}, err
	}
	return Verifier{value: s}, nil
}

func checkVerifier(s string) error {
	if err := CheckLength(len(s)); err != nil {
		return err
	}
	return checkChars(s, "verifier", isVerifierChar)
}

// EncodeVerifier base64url-encodes b into a Verifier. len(b) must be within
// [MinCount, MaxCount].
func EncodeVerifier(b []byte) (Verifier, error) {
	if err := CheckCount(len(b)); err != nil {
		return Verifier{}, err
	}
	return Verifier{value: base64.RawURLEncoding.EncodeToString(b)}, nil
}

// String returns the raw verifier, as sent in the code_verifier parameter.
func (v Verifier) String() string { return v.value }

// Len returns the verifier length in characters.
func (v Verifier) Len() int { return len(v.value) }

func (v Verifier) IsZero() bool { return v.value == "" }

// Challenge derives the S256 challenge.
func (v Verifier) Challenge() Challenge {
	return v.ChallengeWith(S256)
}

// ChallengeWith derives the challenge for the given method.
func (v Verifier) ChallengeWith(m Method) Challenge {
	return derive(v.value, m)
}

// Verify reports whether c was derived from v. It behaves exactly like
// c.Verify(v).
func (v Verifier) Verify(c Challenge) bool {
	if v.IsZero() || c.IsZero() {
		return false
	}
	return c.Equal(v.ChallengeWith(c.method))
}

// Equal compares two verifiers in constant time.
func (v Verifier) Equal(o Verifier) bool {
	return subtle.ConstantTimeCompare([]byte(v.value), []byte(o.value)) == 1
}

func (v Verifier) MarshalText() ([]byte, error) {
	return []byte(v.value), nil
}

// UnmarshalText parses text as a verifier. Empty text yields the zero
// Verifier, matching what the zero value marshals to.
func (v *Verifier) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = Verifier{}
		return nil
	}
	parsed, err := ParseVerifier(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// LogValue keeps the verifier out of structured logs.
func (v Verifier) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("value", redacted),
		slog.Int("length", len(v.value)),
	)
}

// GoString keeps the verifier out of %#v output.
func (v Verifier) GoString() string {
	return "pkce.Verifier{" + redacted + "}"
}

const redacted = "[REDACTED]"
