package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bartuster/todo-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserSource struct {
	users map[string]domain.User
}

func (s *stubUserSource) GetByUsername(_ context.Context, username string) (domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func newTestEngine(codec *TokenCodec, users UserSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireUser(codec, users, zerolog.Nop()), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	return r
}

func TestRequireUserMissingToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", "todo-backend", time.Hour)
	r := newTestEngine(codec, &stubUserSource{users: map[string]domain.User{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing credentials"}`, w.Body.String())
}

func TestRequireUserBadToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", "todo-backend", time.Hour)
	r := newTestEngine(codec, &stubUserSource{users: map[string]domain.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
}

// A valid token whose subject no longer exists must be indistinguishable
// from a forged token.
func TestRequireUserUnknownSubjectMatchesBadToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", "todo-backend", time.Hour)
	r := newTestEngine(codec, &stubUserSource{users: map[string]domain.User{}})

	token, err := codec.Encode("ghost")
	require.NoError(t, err)

	unknownReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	unknownReq.Header.Set("Authorization", "Bearer "+token)
	unknownW := httptest.NewRecorder()
	r.ServeHTTP(unknownW, unknownReq)

	forgedReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	forgedReq.Header.Set("Authorization", "Bearer forged")
	forgedW := httptest.NewRecorder()
	r.ServeHTTP(forgedW, forgedReq)

	assert.Equal(t, http.StatusUnauthorized, unknownW.Code)
	assert.Equal(t, forgedW.Code, unknownW.Code)
	assert.Equal(t, forgedW.Body.String(), unknownW.Body.String())
}

func TestRequireUserSetsCurrentUser(t *testing.T) {
	codec := NewTokenCodec("test-secret", "todo-backend", time.Hour)
	source := &stubUserSource{users: map[string]domain.User{
		"alice": {ID: 7, Username: "alice"},
	}}
	r := newTestEngine(codec, source)

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
}

func TestRequireUserAcceptsCookieToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", "todo-backend", time.Hour)
	source := &stubUserSource{users: map[string]domain.User{
		"alice": {ID: 7, Username: "alice"},
	}}
	r := newTestEngine(codec, source)

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
