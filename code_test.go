package pkce

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	require.False(t, code.IsZero())

	v, c := code.Pair()
	assert.Equal(t, DefaultLength, v.Len())
	assert.Equal(t, S256, c.Method())
	assert.True(t, v.Challenge().Equal(c))
	assert.True(t, v.Verify(c))

	verifier, challenge, method := code.Parts()
	assert.Equal(t, v.String(), verifier)
	assert.Equal(t, c.String(), challenge)
	assert.Equal(t, S256, method)
}

func TestGenerateCodeLength(t *testing.T) {
	for _, n := range []int{MinLength, DefaultLength, MaxLength} {
		code, err := GenerateCodeLength(n)
		require.NoError(t, err)
		v, c := code.Pair()
		assert.Equal(t, n, v.Len())
		assert.True(t, c.Verify(v))
	}

	code, err := GenerateCodeLength(MinLength - 1)
	require.ErrorIs(t, err, ErrInvalidLength)
	assert.True(t, code.IsZero())
}

func TestGeneratorCodePlain(t *testing.T) {
	g, err := NewGenerator(WithMethod(Plain), WithCount(DefaultCount))
	require.NoError(t, err)

	code, err := g.Code()
	require.NoError(t, err)
	verifier, challenge, method := code.Parts()
	assert.Equal(t, Plain, method)
	assert.Equal(t, verifier, challenge)
	assert.Equal(t, DefaultLength, len(verifier))
}

func TestCodeLogValue(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	verifier, challenge, _ := code.Parts()

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("authorize", "pkce", code)

	assert.NotContains(t, buf.String(), verifier)
	assert.Contains(t, buf.String(), challenge)
}

func TestDiagnostics(t *testing.T) {
	_, lengthErr := ParseVerifier("short")
	_, charErr := ParseVerifier(rfcVerifier[:42] + "!")
	_, encErr := ParseChallenge("short")
	_, countErr := EncodeVerifier(nil)
	_, methodErr := ParseMethod("S512")

	for _, tc := range []struct {
		err  error
		kind error
		code string
	}{
		{lengthErr, ErrInvalidLength, "pkce.verifier.length"},
		{charErr, ErrInvalidCharacter, "pkce.verifier.character"},
		{encErr, ErrInvalidEncoding, "pkce.challenge.encoding"},
		{countErr, ErrInvalidCount, "pkce.count"},
		{methodErr, ErrUnknownMethod, "pkce.method"},
	} {
		t.Run(tc.code, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.kind)
			var d Diagnostic
			require.True(t, errors.As(tc.err, &d))
			assert.Equal(t, tc.code, d.Code())
			assert.NotEmpty(t, d.Help())
		})
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("S256")
	require.NoError(t, err)
	assert.Equal(t, S256, m)

	m, err = ParseMethod("plain")
	require.NoError(t, err)
	assert.Equal(t, Plain, m)

	_, err = ParseMethod("PLAIN")
	var me *MethodError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "PLAIN", me.Method)

	assert.Equal(t, "Method(7)", Method(7).String())
	_, err = Method(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownMethod)
}
