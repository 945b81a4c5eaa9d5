package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateJWT_Success(t *testing.T) {
	token, err := NewVerifier(testSecret).GenerateJWT("user-123")

	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	_, err := NewVerifier("").GenerateJWT("user-123")

	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestValidateJWT_ValidToken(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.GenerateJWT("user-123")
	require.NoError(t, err)

	claims, err := v.ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).ValidateJWT(token)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := NewVerifier(testSecret).GenerateJWT("user-123")
	require.NoError(t, err)

	_, err = NewVerifier("different-secret-key").ValidateJWT(token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		UserID: "attacker",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).ValidateJWT(token)

	assert.Error(t, err, "unsigned token should be rejected")
}

func newIdentityRouter(v *Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(IdentityMiddleware(v))
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "source": c.GetString(ContextIdentitySource)})
	})

	return r
}

func whoami(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestIdentityMiddleware(t *testing.T) {
	v := NewVerifier(testSecret)
	token, err := v.GenerateJWT("jwt-user")
	require.NoError(t, err)

	t.Run("anonymous", func(t *testing.T) {
		w := whoami(newIdentityRouter(v), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"","source":""}`, w.Body.String())
	})

	t.Run("header identity", func(t *testing.T) {
		w := whoami(newIdentityRouter(v), map[string]string{HeaderUserID: " header-user "})

		assert.JSONEq(t, `{"user_id":"header-user","source":"header"}`, w.Body.String())
	})

	t.Run("token wins over header", func(t *testing.T) {
		w := whoami(newIdentityRouter(v), map[string]string{
			"Authorization": "Bearer " + token,
			HeaderUserID:    "header-user",
		})

		assert.JSONEq(t, `{"user_id":"jwt-user","source":"token"}`, w.Body.String())
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		w := whoami(newIdentityRouter(v), map[string]string{"Authorization": "Bearer nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("tokens ignored without a secret", func(t *testing.T) {
		w := whoami(newIdentityRouter(NewVerifier("")), map[string]string{
			"Authorization": "Bearer " + token,
			HeaderUserID:    "header-user",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"header-user","source":"header"}`, w.Body.String())
	})

	t.Run("oversized header ignored", func(t *testing.T) {
		w := whoami(newIdentityRouter(v), map[string]string{HeaderUserID: strings.Repeat("x", maxUserIDLength+1)})

		assert.JSONEq(t, `{"user_id":"","source":""}`, w.Body.String())
	})
}
