package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/auth"
	"github.com/suivi-dev/suivi/internal/authz"
	"github.com/suivi-dev/suivi/internal/types"
)

// Principal is the authenticated identity attached to the request context.
type Principal struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Role     authz.Role `json:"role"`
}

// Authenticate resolves the session cookie to a principal and aborts with
// 401 when there is none. It runs before any role check or store access.
func Authenticate(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(auth.SessionCookieName)

		if err != nil || cookie == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := auth.LookupSession(db, cookie)

		if err != nil {
			if errors.Is(err, auth.ErrInvalidSession) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			} else {
				log.Printf("Failed to look up session: %v", err)
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextUserKey, Principal{
			ID:       user.ID,
			Username: user.Username,
			Role:     authz.Role(user.Role),
		})
		ctx.Next()
	}
}

// RequireOperation aborts with 403 unless the principal's role is allowed
// to perform op. Must run after Authenticate.
func RequireOperation(op authz.Operation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		principal, ok := value.(Principal)

		if !ok || !authz.Allowed(principal.Role, op) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this operation"})
			return
		}

		ctx.Next()
	}
}
