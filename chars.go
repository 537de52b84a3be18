package pkce

// Alphabet is the set of unreserved URI characters a verifier may contain.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

func isVerifierChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// base64url alphabet, used by S256 challenges.
func isChallengeChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_':
		return true
	}
	return false
}

// checkChars operates on bytes, so any non-ASCII input is rejected at its
// first byte.
func checkChars(s, subject string, valid func(byte) bool) error {
	for i := 0; i < len(s); i++ {
		if !valid(s[i]) {
			return &CharacterError{Subject: subject, Char: s[i], Position: i}
		}
	}
	return nil
}
