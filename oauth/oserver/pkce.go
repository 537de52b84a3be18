package oserver

import (
	"github.com/Seann-Moser/pkce"
)

// Accept validates the PKCE parameters of an authorization request under p
// and returns the grant to store with the issued code. An absent method
// means plain (RFC 7636 §4.3).
func (p Policy) Accept(req AuthRequest) (Grant, error) {
	if req.CodeChallenge == "" {
		if req.CodeChallengeMethod != "" {
			return Grant{}, invalidRequest("code_challenge_method sent without code_challenge", ErrMethodNoChallenge)
		}
		if p.RequirePKCE {
			return Grant{}, invalidRequest("code_challenge required", ErrMissingChallenge)
		}
		return Grant{}, nil
	}

	method := pkce.Plain
	if req.CodeChallengeMethod != "" {
		m, err := pkce.ParseMethod(req.CodeChallengeMethod)
		if err != nil {
			return Grant{}, invalidRequest("transform algorithm not supported", err)
		}
		method = m
	}
	if method == pkce.Plain && !p.AllowPlain {
		return Grant{}, invalidRequest("transform algorithm not supported", ErrPlainNotAllowed)
	}

	c, err := pkce.ParseChallengeWith(req.CodeChallenge, method)
	if err != nil {
		return Grant{}, invalidRequest("malformed code_challenge", err)
	}
	return Grant{CodeChallenge: c.String(), CodeChallengeMethod: c.Method().String()}, nil
}

// Challenge parses the stored challenge. ok is false when the grant was
// issued without PKCE. A record without a method is read as S256.
func (g Grant) Challenge() (c pkce.Challenge, ok bool, err error) {
	if g.CodeChallenge == "" {
		return pkce.Challenge{}, false, nil
	}
	method := pkce.S256
	if g.CodeChallengeMethod != "" {
		if method, err = pkce.ParseMethod(g.CodeChallengeMethod); err != nil {
			return pkce.Challenge{}, false, err
		}
	}
	c, err = pkce.ParseChallengeWith(g.CodeChallenge, method)
	if err != nil {
		return pkce.Challenge{}, false, err
	}
	return c, true, nil
}

// Check validates the code_verifier of a token request against the grant.
// All failures are invalid_grant (RFC 7636 §4.6); the comparison runs in
// constant time.
func (g Grant) Check(codeVerifier string) error {
	c, ok, err := g.Challenge()
	if err != nil {
		return invalidGrant("stored code_challenge is invalid", err)
	}
	if !ok {
		if codeVerifier != "" {
			return invalidGrant("code_verifier not expected", ErrUnexpectedVerifier)
		}
		return nil
	}
	if codeVerifier == "" {
		return invalidGrant("code_verifier required", ErrMissingVerifier)
	}
	v, err := pkce.ParseVerifier(codeVerifier)
	if err != nil {
		return invalidGrant("malformed code_verifier", err)
	}
	if !c.Verify(v) {
		return invalidGrant("invalid code_verifier", ErrVerifierMismatch)
	}
	return nil
}
