package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/db"
	"github.com/suivi-dev/suivi/internal/auth"
	"github.com/suivi-dev/suivi/internal/config"
	"github.com/suivi-dev/suivi/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	database, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func seedUser(t *testing.T, database *gorm.DB) models.User {
	t.Helper()

	user := models.User{Username: "tester", PasswordHash: "x", Role: "user"}
	require.NoError(t, database.Create(&user).Error)

	return user
}

func TestCreateAndLookupSession(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database)

	session, err := auth.CreateSession(database, user.ID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, err := auth.LookupSession(database, session.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "tester", got.Username)
}

func TestLookupUnknownSession(t *testing.T) {
	database := setupDB(t)

	_, err := auth.LookupSession(database, "no-such-session")
	require.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database)

	session, err := auth.CreateSession(database, user.ID, -time.Minute)
	require.NoError(t, err)

	_, err = auth.LookupSession(database, session.ID)
	require.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestRevokedSessionIsRejected(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database)

	session, err := auth.CreateSession(database, user.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, auth.RevokeSession(database, session.ID))

	_, err = auth.LookupSession(database, session.ID)
	require.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestPurgeExpired(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database)

	expired, err := auth.CreateSession(database, user.ID, -time.Minute)
	require.NoError(t, err)
	live, err := auth.CreateSession(database, user.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, auth.PurgeExpired(database))

	var count int64
	require.NoError(t, database.Model(&models.Session{}).Where("id = ?", expired.ID).Count(&count).Error)
	require.Zero(t, count)

	_, err = auth.LookupSession(database, live.ID)
	require.NoError(t, err)
}
