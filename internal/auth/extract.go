package auth

import (
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	tokenCarrierName    = "token"
	bearerPrefix        = "bearer "
)

// carrier reads one possible credential location off a request.
type carrier func(r *http.Request) string

// Carriers in precedence order. Clients attach the token in several ways,
// and the order is a contract: a header always wins over the cookie, and
// the cookie over the query parameter. net/http canonicalizes header names,
// so the `token` and `Token` header spellings are one carrier here.
var carriers = []carrier{
	fromAuthorization,
	fromTokenHeader,
	fromTokenCookie,
	fromTokenQuery,
}

// ExtractToken returns the first non-empty token value among the request's
// carriers, with surrounding whitespace trimmed. The second return is false
// only when no carrier holds a non-empty value.
func ExtractToken(r *http.Request) (string, bool) {
	for _, read := range carriers {
		if v := strings.TrimSpace(read(r)); v != "" {
			return v, true
		}
	}
	return "", false
}

func fromAuthorization(r *http.Request) string {
	v := r.Header.Get(authorizationHeader)
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return v[len(bearerPrefix):]
	}
	return v
}

func fromTokenHeader(r *http.Request) string {
	return r.Header.Get(tokenCarrierName)
}

func fromTokenCookie(r *http.Request) string {
	c, err := r.Cookie(tokenCarrierName)
	if err != nil {
		return ""
	}
	return c.Value
}

func fromTokenQuery(r *http.Request) string {
	return r.URL.Query().Get(tokenCarrierName)
}
