package pkcebson

import (
	"strings"
	"testing"

	"github.com/Seann-Moser/pkce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	rfcVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

type grantDoc struct {
	Code      string         `bson:"code"`
	Challenge pkce.Challenge `bson:"code_challenge"`
	Method    pkce.Method    `bson:"code_challenge_method"`
}

type sessionDoc struct {
	State    string        `bson:"state"`
	Verifier pkce.Verifier `bson:"code_verifier"`
}

func TestChallengeRoundTrip(t *testing.T) {
	reg := NewRegistry()
	v, err := pkce.ParseVerifier(rfcVerifier)
	require.NoError(t, err)
	c := v.Challenge()

	data, err := bson.MarshalWithRegistry(reg, grantDoc{Code: "abc", Challenge: c, Method: c.Method()})
	require.NoError(t, err)

	raw := bson.Raw(data)
	assert.Equal(t, rfcChallenge, raw.Lookup("code_challenge").StringValue())
	assert.Equal(t, "S256", raw.Lookup("code_challenge_method").StringValue())

	var got grantDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &got))
	assert.Equal(t, "abc", got.Code)
	assert.True(t, c.Equal(got.Challenge))
	assert.Equal(t, pkce.S256, got.Method)
	assert.True(t, got.Challenge.Verify(v))

	again, err := bson.MarshalWithRegistry(reg, got)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestPlainChallengeRoundTrip(t *testing.T) {
	reg := NewRegistry()
	for _, verifier := range []string{
		"abc.def~ghi_jkl-mno" + strings.Repeat("x", 30),
		strings.Repeat("A", pkce.ChallengeLength),
	} {
		v, err := pkce.ParseVerifier(verifier)
		require.NoError(t, err)
		c := v.ChallengeWith(pkce.Plain)

		data, err := bson.MarshalWithRegistry(reg, grantDoc{Code: "abc", Challenge: c, Method: c.Method()})
		require.NoError(t, err)

		sub, ok := bson.Raw(data).Lookup("code_challenge").DocumentOK()
		require.True(t, ok, "plain challenge should be stored as a subdocument")
		assert.Equal(t, "plain", sub.Lookup("method").StringValue())
		assert.Equal(t, verifier, sub.Lookup("value").StringValue())

		var got grantDoc
		require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &got))
		assert.Equal(t, pkce.Plain, got.Challenge.Method())
		assert.True(t, c.Equal(got.Challenge))
		assert.True(t, got.Challenge.Verify(v))

		again, err := bson.MarshalWithRegistry(reg, got)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	}
}

func TestChallengeDocumentDecode(t *testing.T) {
	reg := NewRegistry()
	var g grantDoc

	data, err := bson.Marshal(bson.M{"code_challenge": bson.M{"value": rfcChallenge, "issued": 1}})
	require.NoError(t, err)
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &g))
	assert.Equal(t, pkce.S256, g.Challenge.Method())
	assert.Equal(t, rfcChallenge, g.Challenge.String())

	data, err = bson.Marshal(bson.M{"code_challenge": bson.M{"method": "plain", "value": "short"}})
	require.NoError(t, err)
	require.ErrorIs(t, bson.UnmarshalWithRegistry(reg, data, &g), pkce.ErrInvalidLength)

	data, err = bson.Marshal(bson.M{"code_challenge": bson.M{"method": "S512", "value": rfcChallenge}})
	require.NoError(t, err)
	require.ErrorIs(t, bson.UnmarshalWithRegistry(reg, data, &g), pkce.ErrUnknownMethod)
}

func TestVerifierRoundTrip(t *testing.T) {
	reg := NewRegistry()
	v, err := pkce.GenerateVerifier()
	require.NoError(t, err)

	data, err := bson.MarshalWithRegistry(reg, sessionDoc{State: "xyz", Verifier: v})
	require.NoError(t, err)
	assert.Equal(t, v.String(), bson.Raw(data).Lookup("code_verifier").StringValue())

	var got sessionDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &got))
	assert.True(t, v.Equal(got.Verifier))
}

func TestDecodeRejectsInvalid(t *testing.T) {
	reg := NewRegistry()

	data, err := bson.Marshal(bson.M{"code_challenge": rfcChallenge + "="})
	require.NoError(t, err)
	var g grantDoc
	err = bson.UnmarshalWithRegistry(reg, data, &g)
	require.ErrorIs(t, err, pkce.ErrInvalidCharacter)

	data, err = bson.Marshal(bson.M{"code_challenge_method": "S512"})
	require.NoError(t, err)
	err = bson.UnmarshalWithRegistry(reg, data, &g)
	require.ErrorIs(t, err, pkce.ErrUnknownMethod)

	data, err = bson.Marshal(bson.M{"code_verifier": "too-short"})
	require.NoError(t, err)
	var s sessionDoc
	err = bson.UnmarshalWithRegistry(reg, data, &s)
	require.ErrorIs(t, err, pkce.ErrInvalidLength)

	data, err = bson.Marshal(bson.M{"code_verifier": 42})
	require.NoError(t, err)
	require.Error(t, bson.UnmarshalWithRegistry(reg, data, &s))
}

func TestDecodeNull(t *testing.T) {
	data, err := bson.Marshal(bson.M{"state": "xyz", "code_verifier": nil})
	require.NoError(t, err)

	var s sessionDoc
	require.NoError(t, bson.UnmarshalWithRegistry(NewRegistry(), data, &s))
	assert.Equal(t, "xyz", s.State)
	assert.True(t, s.Verifier.IsZero())
}

func TestZeroValueRoundTrip(t *testing.T) {
	reg := NewRegistry()

	data, err := bson.MarshalWithRegistry(reg, grantDoc{Code: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "", bson.Raw(data).Lookup("code_challenge").StringValue())

	var g grantDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &g))
	assert.True(t, g.Challenge.IsZero())

	data, err = bson.MarshalWithRegistry(reg, sessionDoc{State: "xyz"})
	require.NoError(t, err)
	var s sessionDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, data, &s))
	assert.True(t, s.Verifier.IsZero())
}

func TestClientOptions(t *testing.T) {
	opts := ClientOptions()
	require.NotNil(t, opts.Registry)
}
