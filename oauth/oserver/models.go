package oserver

// Policy controls how PKCE parameters are accepted.
type Policy struct {
	// RequirePKCE rejects authorization requests without a code_challenge.
	RequirePKCE bool
	// AllowPlain accepts code_challenge_method=plain, including requests
	// that omit the method.
	AllowPlain bool
}

// DefaultPolicy requires S256 on every authorization request, as OAuth 2.1
// does.
var DefaultPolicy = Policy{RequirePKCE: true}

// /authorize
type AuthRequest struct {
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"` // "S256" or "plain"
}

// /token
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	Code         string `json:"code,omitempty"`
	CodeVerifier string `json:"code_verifier,omitempty"`
}

// Grant is the PKCE part of an issued authorization code, as the caller
// stores it next to the code. Both fields are empty when the client did not
// use PKCE.
type Grant struct {
	CodeChallenge       string `json:"code_challenge,omitempty" bson:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty" bson:"code_challenge_method,omitempty"`
}
