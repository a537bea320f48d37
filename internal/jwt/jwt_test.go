package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamforge/hlsplaylist/internal/cache"
	"github.com/streamforge/hlsplaylist/internal/config"
)

const testSecret = "unit-test-secret"

func signHS256(t *testing.T, header, payload map[string]interface{}, secret string) string {
	t.Helper()

	encode := func(v map[string]interface{}) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	signingInput := encode(header) + "." + encode(payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return signingInput + "." + sig
}

func newJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:      testSecret,
		HeaderName:  "Authorization",
		ParamName:   "token",
		AllowedAlgs: []string{"HS256"},
		CacheTTL:    time.Minute,
	}
}

func TestValidatorValidateTokenAcceptsValidSignature(t *testing.T) {
	cfg := newJWTConfig()
	v := NewValidator(cfg, nil)

	token := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{"sub": "player-1", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "player-1", claims.Subject)
}

func TestValidatorValidateTokenRejectsBadSignature(t *testing.T) {
	cfg := newJWTConfig()
	v := NewValidator(cfg, nil)

	token := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{"sub": "player-1", "exp": time.Now().Add(time.Hour).Unix()}, "wrong-secret")

	_, err := v.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidatorValidateTokenRejectsExpiredToken(t *testing.T) {
	cfg := newJWTConfig()
	v := NewValidator(cfg, nil)

	token := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{"sub": "player-1", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)

	_, err := v.ValidateToken(token)
	require.Error(t, err)
	tokenErr, ok := err.(*TokenError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, tokenErr.StatusCode)
}

func TestValidatorUsesCacheToAvoidReverification(t *testing.T) {
	cfg := newJWTConfig()
	c := cache.NewMemory()
	v := NewValidator(cfg, c)

	token := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{"sub": "player-2", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	first, err := v.ValidateToken(token)
	require.NoError(t, err)

	cached, ok := c.Get(cache.FromString("jwt:" + token))
	require.True(t, ok)
	assert.Same(t, first, cached)

	second, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestExtractorExtractFromHeaderAndQuery(t *testing.T) {
	cfg := newJWTConfig()
	e := NewExtractor(cfg)

	token := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{"sub": "p"}, testSecret)

	t.Run("from Authorization header", func(t *testing.T) {
		r := &http.Request{Header: http.Header{"Authorization": []string{"Bearer " + token}}, URL: &url.URL{}}
		got, err := e.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("falls back to query parameter", func(t *testing.T) {
		r := &http.Request{Header: http.Header{}, URL: &url.URL{RawQuery: "token=" + token}}
		got, err := e.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("missing token is an extraction error", func(t *testing.T) {
		r := &http.Request{Header: http.Header{}, URL: &url.URL{}}
		_, err := e.Extract(r)
		require.Error(t, err)
		tokenErr, ok := err.(*TokenError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, tokenErr.StatusCode)
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		r := &http.Request{Header: http.Header{"Authorization": []string{"Bearer not-a-jwt"}}, URL: &url.URL{}}
		_, err := e.Extract(r)
		assert.Error(t, err)
	})
}

func TestClaimsHelpers(t *testing.T) {
	raw := signHS256(t, map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{
			"sub":      "player-9",
			"exp":      time.Now().Add(time.Hour).Unix(),
			"playerId": "player-9",
			"roles":    []interface{}{"viewer", "admin"},
		}, testSecret)

	cfg := newJWTConfig()
	v := NewValidator(cfg, nil)
	claims, err := v.ValidateToken(raw)
	require.NoError(t, err)

	playerID, err := claims.GetPlayerID()
	require.NoError(t, err)
	assert.Equal(t, "player-9", playerID)

	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("superadmin"))
	assert.False(t, claims.IsExpired())
	assert.Greater(t, claims.RemainingValidity(), int64(0))
}
