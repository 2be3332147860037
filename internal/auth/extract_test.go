package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(r *http.Request)
		wantToken string
		wantOK    bool
	}{
		{
			name:      "no credentials",
			setup:     func(r *http.Request) {},
			wantToken: "",
			wantOK:    false,
		},
		{
			name: "authorization bearer",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer abc")
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "bearer prefix is case insensitive",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "bEaReR abc")
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "authorization without scheme",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "abc")
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "token header",
			setup: func(r *http.Request) {
				r.Header.Set("token", "abc")
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "capitalized token header",
			setup: func(r *http.Request) {
				r.Header.Set("Token", "abc")
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "query parameter",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("token", "abc")
				r.URL.RawQuery = q.Encode()
			},
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name: "authorization wins over token header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer from-auth")
				r.Header.Set("Token", "from-header")
			},
			wantToken: "from-auth",
			wantOK:    true,
		},
		{
			name: "token header wins over cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Token", "from-header")
				r.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
			},
			wantToken: "from-header",
			wantOK:    true,
		},
		{
			name: "cookie wins over query",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
				q := r.URL.Query()
				q.Set("token", "from-query")
				r.URL.RawQuery = q.Encode()
			},
			wantToken: "from-cookie",
			wantOK:    true,
		},
		{
			name: "empty carrier falls through to next",
			setup: func(r *http.Request) {
				r.Header.Set("Token", "   ")
				r.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
			},
			wantToken: "from-cookie",
			wantOK:    true,
		},
		{
			name: "surrounding whitespace is trimmed",
			setup: func(r *http.Request) {
				r.Header.Set("Token", "  abc  ")
			},
			wantToken: "abc",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
			tt.setup(r)

			token, ok := ExtractToken(r)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
