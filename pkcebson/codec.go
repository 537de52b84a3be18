// Package pkcebson stores pkce values in MongoDB documents. Verifiers,
// methods and S256 challenges are strings; a plain challenge is a
// {method, value} subdocument so its method survives the round trip.
// Decoding validates through the pkce parsers, so a document holding a
// malformed verifier or challenge fails to decode instead of producing an
// invalid value. Null and empty strings decode to the zero value.
package pkcebson

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Seann-Moser/pkce"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	tVerifier  = reflect.TypeOf(pkce.Verifier{})
	tChallenge = reflect.TypeOf(pkce.Challenge{})
	tMethod    = reflect.TypeOf(pkce.Method(0))
)

// Register adds the pkce encoders and decoders to reg.
func Register(reg *bsoncodec.Registry) {
	reg.RegisterTypeEncoder(tVerifier, bsoncodec.ValueEncoderFunc(encodeVerifier))
	reg.RegisterTypeDecoder(tVerifier, bsoncodec.ValueDecoderFunc(decodeVerifier))
	reg.RegisterTypeEncoder(tChallenge, bsoncodec.ValueEncoderFunc(encodeChallenge))
	reg.RegisterTypeDecoder(tChallenge, bsoncodec.ValueDecoderFunc(decodeChallenge))
	reg.RegisterTypeEncoder(tMethod, bsoncodec.ValueEncoderFunc(encodeMethod))
	reg.RegisterTypeDecoder(tMethod, bsoncodec.ValueDecoderFunc(decodeMethod))
}

// NewRegistry returns the default bson registry with the pkce codecs added.
func NewRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	Register(reg)
	return reg
}

// ClientOptions returns client options using NewRegistry, to be merged with
// the caller's own options when connecting.
func ClientOptions() *options.ClientOptions {
	return options.Client().SetRegistry(NewRegistry())
}

func encodeVerifier(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tVerifier {
		return bsoncodec.ValueEncoderError{Name: "VerifierEncodeValue", Types: []reflect.Type{tVerifier}, Received: val}
	}
	return vw.WriteString(val.Interface().(pkce.Verifier).String())
}

func decodeVerifier(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tVerifier {
		return bsoncodec.ValueDecoderError{Name: "VerifierDecodeValue", Types: []reflect.Type{tVerifier}, Received: val}
	}
	s, null, err := readString(vr)
	if err != nil || null || s == "" {
		if err == nil {
			val.Set(reflect.Zero(tVerifier))
		}
		return err
	}
	v, err := pkce.ParseVerifier(s)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(v))
	return nil
}

func encodeChallenge(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tChallenge {
		return bsoncodec.ValueEncoderError{Name: "ChallengeEncodeValue", Types: []reflect.Type{tChallenge}, Received: val}
	}
	c := val.Interface().(pkce.Challenge)
	if c.Method() == pkce.S256 {
		return vw.WriteString(c.String())
	}

	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}
	for _, field := range [][2]string{{"method", c.Method().String()}, {"value", c.String()}} {
		ew, err := dw.WriteDocumentElement(field[0])
		if err != nil {
			return err
		}
		if err := ew.WriteString(field[1]); err != nil {
			return err
		}
	}
	return dw.WriteDocumentEnd()
}

func decodeChallenge(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tChallenge {
		return bsoncodec.ValueDecoderError{Name: "ChallengeDecodeValue", Types: []reflect.Type{tChallenge}, Received: val}
	}

	var (
		s      string
		method = pkce.S256
		err    error
	)
	switch vr.Type() {
	case bsontype.EmbeddedDocument:
		s, method, err = readChallengeDocument(vr)
	default:
		s, _, err = readString(vr)
	}
	if err != nil {
		return err
	}
	if s == "" {
		val.Set(reflect.Zero(tChallenge))
		return nil
	}

	c, err := pkce.ParseChallengeWith(s, method)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(c))
	return nil
}

// readChallengeDocument reads {method, value}. A missing or null method is
// S256.
func readChallengeDocument(vr bsonrw.ValueReader) (value string, method pkce.Method, err error) {
	dr, err := vr.ReadDocument()
	if err != nil {
		return "", 0, err
	}
	for {
		key, evr, err := dr.ReadElement()
		if errors.Is(err, bsonrw.ErrEOD) {
			return value, method, nil
		}
		if err != nil {
			return "", 0, err
		}
		switch key {
		case "value":
			if value, _, err = readString(evr); err != nil {
				return "", 0, err
			}
		case "method":
			s, _, err := readString(evr)
			if err != nil {
				return "", 0, err
			}
			if s == "" {
				continue
			}
			if method, err = pkce.ParseMethod(s); err != nil {
				return "", 0, err
			}
		default:
			if err := evr.Skip(); err != nil {
				return "", 0, err
			}
		}
	}
}

func encodeMethod(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tMethod {
		return bsoncodec.ValueEncoderError{Name: "MethodEncodeValue", Types: []reflect.Type{tMethod}, Received: val}
	}
	text, err := val.Interface().(pkce.Method).MarshalText()
	if err != nil {
		return err
	}
	return vw.WriteString(string(text))
}

func decodeMethod(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tMethod {
		return bsoncodec.ValueDecoderError{Name: "MethodDecodeValue", Types: []reflect.Type{tMethod}, Received: val}
	}
	s, null, err := readString(vr)
	if err != nil || null {
		if null {
			val.Set(reflect.Zero(tMethod))
		}
		return err
	}
	m, err := pkce.ParseMethod(s)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(m))
	return nil
}

func readString(vr bsonrw.ValueReader) (s string, null bool, err error) {
	switch vr.Type() {
	case bsontype.String:
		s, err = vr.ReadString()
		return s, false, err
	case bsontype.Null:
		return "", true, vr.ReadNull()
	default:
		return "", false, fmt.Errorf("pkcebson: cannot decode %v into a pkce value", vr.Type())
	}
}
