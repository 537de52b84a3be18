package oserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type ContentType string

const (
	ContentTypeJSON ContentType = "application/json"
	ContentTypeForm ContentType = "application/x-www-form-urlencoded"
)

// ParseAuthRequest reads the PKCE parameters of an authorization request.
func ParseAuthRequest(q url.Values) AuthRequest {
	return AuthRequest{
		CodeChallenge:       q.Get("code_challenge"),
		CodeChallengeMethod: q.Get("code_challenge_method"),
	}
}

// ParseTokenRequest reads a token request sent either as a form or as JSON.
func ParseTokenRequest(r *http.Request) (TokenRequest, error) {
	var req TokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), string(ContentTypeForm)) {
		if err := r.ParseForm(); err != nil {
			return req, invalidRequest("malformed form body", err)
		}
		req = TokenRequest{
			GrantType:    r.Form.Get("grant_type"),
			Code:         r.Form.Get("code"),
			CodeVerifier: r.Form.Get("code_verifier"),
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, invalidRequest("malformed JSON body", err)
		}
	}
	return req, nil
}
