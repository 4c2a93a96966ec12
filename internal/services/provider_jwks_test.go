package services

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://id.example.edu"

func newJWKSServer(t *testing.T, key *rsa.PrivateKey, kid string) *httptest.Server {
	t.Helper()
	n := base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes())
	body := fmt.Sprintf(
		`{"keys":[{"kty":"RSA","kid":"%s","use":"sig","alg":"RS256","n":"%s","e":"AQAB"}]}`,
		kid, n,
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signSessionToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestKeyfuncVerifiesProviderToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "key-1")

	client := NewProviderJWKSClient(srv.URL, testIssuer, "studyhub", 2*time.Second)
	signed := signSessionToken(t, key, "key-1", jwt.MapClaims{
		"iss": testIssuer,
		"aud": "studyhub",
		"sub": "ext-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	parsed, err := jwt.Parse(signed, client.Keyfunc)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestKeyfuncRejectsWrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "key-1")

	client := NewProviderJWKSClient(srv.URL, testIssuer, "studyhub", 2*time.Second)
	signed := signSessionToken(t, key, "key-1", jwt.MapClaims{
		"iss": "https://spoof.example.com",
		"aud": "studyhub",
		"sub": "ext-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = jwt.Parse(signed, client.Keyfunc)
	assert.ErrorContains(t, err, "invalid issuer")
}

func TestKeyfuncRejectsWrongAudience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "key-1")

	client := NewProviderJWKSClient(srv.URL, testIssuer, "studyhub", 2*time.Second)
	signed := signSessionToken(t, key, "key-1", jwt.MapClaims{
		"iss": testIssuer,
		"aud": "someone-else",
		"sub": "ext-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = jwt.Parse(signed, client.Keyfunc)
	assert.ErrorContains(t, err, "invalid audience")
}

func TestKeyfuncRejectsNonRS256(t *testing.T) {
	client := NewProviderJWKSClient("http://unused.invalid", testIssuer, "", time.Second)
	token := jwt.New(jwt.SigningMethodHS256)

	_, err := client.Keyfunc(token)
	assert.ErrorContains(t, err, "unsupported algorithm")
}

func TestKeyfuncRejectsMissingKid(t *testing.T) {
	client := NewProviderJWKSClient("http://unused.invalid", "", "", time.Second)
	token := jwt.New(jwt.SigningMethodRS256)

	_, err := client.Keyfunc(token)
	assert.ErrorContains(t, err, "missing kid")
}

func TestKeyfuncRejectsUnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "key-1")

	client := NewProviderJWKSClient(srv.URL, testIssuer, "", 2*time.Second)
	signed := signSessionToken(t, key, "rotated-away", jwt.MapClaims{
		"iss": testIssuer,
		"sub": "ext-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = jwt.Parse(signed, client.Keyfunc)
	assert.ErrorContains(t, err, "not found")
}
