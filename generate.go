package pkce

import (
	"crypto/rand"
	"io"
)

// Generator produces verifiers and codes. A Generator is immutable once
// built and may be shared between goroutines as long as its random source
// is safe for concurrent use (crypto/rand.Reader is).
type Generator struct {
	rand   io.Reader
	length int
	count  int
	encode bool
	method Method
}

type Option func(*Generator)

// WithLength sets the verifier length, drawn character by character from
// Alphabet.
func WithLength(n int) Option {
	return func(g *Generator) {
		g.length = n
		g.encode = false
	}
}

// WithCount switches the generator to bytes mode: n random bytes are
// base64url-encoded into a verifier of EncodedLength(n) characters.
func WithCount(n int) Option {
	return func(g *Generator) {
		g.count = n
		g.encode = true
	}
}

// WithMethod sets the method of generated challenges.
func WithMethod(m Method) Option {
	return func(g *Generator) {
		g.method = m
	}
}

// WithRandom replaces crypto/rand.Reader as the entropy source.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		g.rand = r
	}
}

func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		rand:   rand.Reader,
		length: DefaultLength,
		method: S256,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.encode {
		if err := CheckCount(g.count); err != nil {
			return nil, err
		}
	} else if err := CheckLength(g.length); err != nil {
		return nil, err
	}
	if !g.method.valid() {
		return nil, &MethodError{Method: g.method.String()}
	}
	return g, nil
}

var defaultGenerator = &Generator{rand: rand.Reader, length: DefaultLength, method: S256}

// Verifier generates a new verifier.
func (g *Generator) Verifier() (Verifier, error) {
	if g.encode {
		b := make([]byte, g.count)
		if _, err := io.ReadFull(g.rand, b); err != nil {
			return Verifier{}, wrapEntropy(err)
		}
		return EncodeVerifier(b)
	}
	s, err := randomString(g.rand, g.length)
	if err != nil {
		return Verifier{}, err
	}
	return Verifier{value: s}, nil
}

// Code generates a verifier and derives its challenge with the generator's
// method.
func (g *Generator) Code() (Code, error) {
	v, err := g.Verifier()
	if err != nil {
		return Code{}, err
	}
	return Code{verifier: v, challenge: v.ChallengeWith(g.method)}, nil
}

// GenerateVerifier returns a verifier of DefaultLength characters.
func GenerateVerifier() (Verifier, error) {
	return defaultGenerator.Verifier()
}

// GenerateVerifierLength returns a verifier of n characters. n outside
// [MinLength, MaxLength] fails with a *LengthError; it is never clamped.
func GenerateVerifierLength(n int) (Verifier, error) {
	g, err := NewGenerator(WithLength(n))
	if err != nil {
		return Verifier{}, err
	}
	return g.Verifier()
}

// GenerateEncodedVerifier returns n random bytes encoded as a verifier.
func GenerateEncodedVerifier(n int) (Verifier, error) {
	g, err := NewGenerator(WithCount(n))
	if err != nil {
		return Verifier{}, err
	}
	return g.Verifier()
}

// GenerateCode returns an S256 code with a verifier of DefaultLength.
func GenerateCode() (Code, error) {
	return defaultGenerator.Code()
}

// GenerateCodeLength returns an S256 code with a verifier of n characters.
func GenerateCodeLength(n int) (Code, error) {
	g, err := NewGenerator(WithLength(n))
	if err != nil {
		return Code{}, err
	}
	return g.Code()
}

// rejection bound: the largest multiple of len(Alphabet) that fits in a byte
const maxUnbiased = 256 - 256%len(Alphabet)

// randomString draws n characters uniformly from Alphabet. Bytes at or above
// maxUnbiased are discarded so every character has the same probability.
func randomString(r io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", wrapEntropy(err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
