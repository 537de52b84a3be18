package oclient

import (
	"github.com/Seann-Moser/pkce"
	"golang.org/x/oauth2"
)

// OAuth request parameters defined by RFC 7636.
const (
	ParamCodeChallenge       = "code_challenge"
	ParamCodeChallengeMethod = "code_challenge_method"
	ParamCodeVerifier        = "code_verifier"
)

// AuthCodeOptions returns the authorization request parameters for c.
func AuthCodeOptions(c pkce.Challenge) []oauth2.AuthCodeOption {
	return []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam(ParamCodeChallenge, c.String()),
		oauth2.SetAuthURLParam(ParamCodeChallengeMethod, c.Method().String()),
	}
}

// VerifierOption returns the token request parameter for v.
func VerifierOption(v pkce.Verifier) oauth2.AuthCodeOption {
	return oauth2.SetAuthURLParam(ParamCodeVerifier, v.String())
}

// Flow carries the PKCE state of one authorization attempt: the challenge
// goes out with the redirect, the verifier with the code exchange. Callers
// persist Verifier() between the two requests and rebuild the Flow with
// ResumeFlow.
type Flow struct {
	verifier  pkce.Verifier
	challenge pkce.Challenge
}

// NewFlow generates a fresh code. Options are passed to pkce.NewGenerator.
func NewFlow(opts ...pkce.Option) (*Flow, error) {
	g, err := pkce.NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	code, err := g.Code()
	if err != nil {
		return nil, err
	}
	v, c := code.Pair()
	return &Flow{verifier: v, challenge: c}, nil
}

// ResumeFlow rebuilds a flow from a stored verifier.
func ResumeFlow(v pkce.Verifier, m pkce.Method) *Flow {
	return &Flow{verifier: v, challenge: v.ChallengeWith(m)}
}

func (f *Flow) Verifier() pkce.Verifier { return f.verifier }

func (f *Flow) Challenge() pkce.Challenge { return f.challenge }

// AuthCodeURL is cfg.AuthCodeURL with the challenge parameters added.
func (f *Flow) AuthCodeURL(cfg *oauth2.Config, state string, opts ...oauth2.AuthCodeOption) string {
	return cfg.AuthCodeURL(state, append(AuthCodeOptions(f.challenge), opts...)...)
}

// ExchangeOptions returns the options to pass to cfg.Exchange.
func (f *Flow) ExchangeOptions(opts ...oauth2.AuthCodeOption) []oauth2.AuthCodeOption {
	return append([]oauth2.AuthCodeOption{VerifierOption(f.verifier)}, opts...)
}
