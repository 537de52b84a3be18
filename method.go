package pkce

import "strconv"

// Method is a code_challenge_method. The zero value is S256.
type Method uint8

const (
	S256 Method = iota
	Plain
)

// Literal values of the code_challenge_method parameter.
const (
	MethodS256  = "S256"
	MethodPlain = "plain"
)

// ParseMethod maps a code_challenge_method literal to a Method. Matching is
// case-sensitive, as in RFC 7636 §4.3.
func ParseMethod(s string) (Method, error) {
	switch s {
	case MethodS256:
		return S256, nil
	case MethodPlain:
		return Plain, nil
	}
	return S256, &MethodError{Method: s}
}

func (m Method) String() string {
	switch m {
	case S256:
		return MethodS256
	case Plain:
		return MethodPlain
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

func (m Method) valid() bool { return m == S256 || m == Plain }

func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, &MethodError{Method: m.String()}
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
