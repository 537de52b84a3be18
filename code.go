package pkce

import "log/slog"

// Code couples a verifier with the challenge derived from it when the code
// was generated. There is no way to build a Code from an unrelated pair.
type Code struct {
	verifier  Verifier
	challenge Challenge
}

// Pair returns the verifier and its challenge, typically so the challenge
// can be sent with the authorization request while the verifier is kept for
// the token request.
func (c Code) Pair() (Verifier, Challenge) {
	return c.verifier, c.challenge
}

// Parts returns the verifier string, challenge string and method.
func (c Code) Parts() (verifier, challenge string, method Method) {
	return c.verifier.value, c.challenge.value, c.challenge.method
}

func (c Code) IsZero() bool { return c.verifier.IsZero() }

func (c Code) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Attr{Key: "verifier", Value: c.verifier.LogValue()},
		slog.Attr{Key: "challenge", Value: c.challenge.LogValue()},
	)
}
