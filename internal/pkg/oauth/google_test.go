package oauth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGenerateState(t *testing.T) {
	g := NewGoogleService("client", "secret", "http://localhost/callback", []string{"email"})

	a, err := g.GenerateState("Mozilla/5.0")
	require.NoError(t, err)
	b, err := g.GenerateState("Mozilla/5.0")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), ".Mozilla/5.0"))
}

func TestRedirectURL(t *testing.T) {
	g := NewGoogleService("client", "secret", "http://localhost/callback", []string{"email", "profile"})

	u, err := url.Parse(g.RedirectURL("state-123"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "http://localhost/callback", q.Get("redirect_uri"))
	assert.Equal(t, "email profile", q.Get("scope"))
}

func TestVerifyUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-1","email":"ana@example.com","verified_email":true,"name":"Ana Gómez"}`))
	}))
	defer srv.Close()

	g := NewGoogleService("client", "secret", "http://localhost/callback", nil)
	g.userInfoURL = srv.URL

	info, err := g.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "access-123", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, GoogleInformation{GoogleID: "g-1", Email: "ana@example.com", VerifiedEmail: true, Name: "Ana Gómez"}, info)
}

func TestVerifyUser_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGoogleService("client", "secret", "http://localhost/callback", nil)
	g.userInfoURL = srv.URL

	_, err := g.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "bad"})
	assert.ErrorContains(t, err, "status 401")
}
