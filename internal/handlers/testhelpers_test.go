package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/db"
	"github.com/suivi-dev/suivi/internal/auth"
	"github.com/suivi-dev/suivi/internal/config"
	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/router"
)

// setupTest builds the full router against a unique in-memory database.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	database, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Session:  config.SessionConfig{TTLHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	return router.SetupRouter(cfg, database), database
}

// createUser inserts an account directly into the store.
func createUser(t *testing.T, database *gorm.DB, username, password, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, database.Create(&user).Error)

	return user
}

// login authenticates through the real endpoint and returns the session cookie value.
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie.Value
		}
	}

	t.Fatal("no session cookie in login response")
	return ""
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body, sessionCookie string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionCookie})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
