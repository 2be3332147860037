package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/Bartuster/todo-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const contextKeyUser = "current_user"

// UserSource resolves a token subject to a user account.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// CurrentUser returns the user set by RequireUser. ok is false if the
// middleware did not run on this request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}

// RequireUser returns a middleware that extracts a bearer token from the
// request, decodes it, resolves the subject to a user and stores the user
// in the request context. A request with no token is rejected as missing
// credentials; a bad token and an unknown subject get the exact same
// rejection so that deleted or renamed accounts are not probeable.
func RequireUser(codec *TokenCodec, users UserSource, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := ExtractToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		subject, err := codec.Decode(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			logger.Error().Err(err).Msg("failed to resolve token subject")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}
