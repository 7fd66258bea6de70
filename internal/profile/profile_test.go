package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Bearing/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := &auth.Authenv{JWTkey: []byte("test-key")}
	token, err := env.IssueToken(7, "engineer")
	require.NoError(t, err)

	h := env.AuthMiddleware(http.HandlerFunc((&ProfileHandler{}).GetProfile))
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var p Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, Profile{ID: 7, Login: "engineer"}, p)
}

func TestGetProfile_NoSession(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ProfileHandler{}).GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
