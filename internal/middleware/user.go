// Package middleware carries the cross-cutting gin middleware: header-based
// user identity, request ids and per-client rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// Identity is what the gateway forwards about the caller. Full
// authentication happens upstream; this layer only needs a stable username.
type Identity struct {
	Username  string
	Name      string
	Email     string
	AvatarURL string
}

// EnsureFunc upserts the identity into the users table and returns the
// numeric user id.
type EnsureFunc func(ctx context.Context, ident Identity) (int64, error)

// WithUser resolves the caller from the X-User-* headers, ensures a user row
// exists and stores the numeric id in the request context. Requests without
// an identity header pass through anonymously; write hooks that need a user
// reject them later.
func WithUser(ensure EnsureFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if username == "" {
			c.Next()
			return
		}

		uid, err := ensure(c.Request.Context(), Identity{
			Username:  username,
			Name:      c.GetHeader("X-User-Name"),
			Email:     c.GetHeader("X-User-Email"),
			AvatarURL: c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"errors": []gin.H{{"status": http.StatusInternalServerError, "message": "ensure user failed"}},
			})
			return
		}

		c.Set(CtxUserID, uid)
		c.Set(CtxUsername, username)
		c.Next()
	}
}

// UserID returns the authenticated user's id, or 0 for anonymous requests.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
