package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-hs256-tokens"

func newTestCodec(t *testing.T) *HS256 {
	t.Helper()
	codec, err := NewHS256([]byte(testSecret))
	require.NoError(t, err)
	return codec
}

func TestNewHS256RejectsEmptySecret(t *testing.T) {
	_, err := NewHS256(nil)
	require.Error(t, err)

	_, err = NewHS256([]byte{})
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Sign(NewSessionClaims("alice@x.com", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3, "JWT has three segments")

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", claims.Subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := newTestCodec(t)

	// Issued 25 hours ago with a 24 hour window.
	issuedAt := time.Now().Add(-25 * time.Hour)
	token, err := codec.Sign(NewSessionClaims("alice@x.com", DefaultSessionTTL, issuedAt))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
	require.NotErrorIs(t, err, ErrInvalid, "expiry is not the same failure as a bad token")
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Sign(NewSessionClaims("alice@x.com", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	i := strings.LastIndex(token, ".") + 1
	sig := []byte(token[i:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:i] + string(sig)

	_, err = codec.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalid)
	require.NotErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewHS256([]byte("a-completely-different-secret"))
	require.NoError(t, err)

	token, err := codec.Sign(NewSessionClaims("alice@x.com", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsForeignAlgorithms(t *testing.T) {
	codec := newTestCodec(t)

	// alg=none with an empty signature must not pass.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone,
		NewSessionClaims("alice@x.com", DefaultSessionTTL, time.Now()))
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(noneToken)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyMalformedInput(t *testing.T) {
	codec := newTestCodec(t)

	for _, in := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(in)
		require.ErrorIs(t, err, ErrInvalid, "input %q", in)
	}
}

func TestVerifyRequiresSubject(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Sign(NewSessionClaims("", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrInvalid)
}
