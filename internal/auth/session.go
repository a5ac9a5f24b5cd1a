// Package auth manages server-side login sessions. Each login inserts a row
// in the sessions table keyed by a random uuid; the browser cookie carries
// only that id. Revoking the row invalidates the cookie immediately.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
)

// SessionCookieName is the cookie holding the session id.
const SessionCookieName = "suivi_session"

// ErrInvalidSession covers missing, expired and revoked sessions.
var ErrInvalidSession = errors.New("invalid or expired session")

// CreateSession inserts a session row for the user and returns it.
func CreateSession(db *gorm.DB, userID uint, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// LookupSession resolves a session id to its user. Expired or revoked
// sessions yield ErrInvalidSession.
func LookupSession(db *gorm.DB, id string) (*models.User, error) {
	var session models.Session

	if err := db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Revoked || session.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidSession
	}

	var user models.User

	if err := db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return &user, nil
}

// RevokeSession marks a session as revoked. Unknown ids are a no-op.
func RevokeSession(db *gorm.DB, id string) error {
	return db.Model(&models.Session{}).Where("id = ?", id).Update("revoked", true).Error
}

// PurgeExpired deletes sessions past their expiry.
func PurgeExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

// SetSessionCookie attaches the session cookie to the response.
func SetSessionCookie(ctx *gin.Context, id string, ttl time.Duration) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
