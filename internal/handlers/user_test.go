package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/suivi-dev/suivi/internal/models"
)

func TestUserManagementIsAdminOnly(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "secret", "admin")
	createUser(t, database, "bob", "secret", "user")
	createUser(t, database, "sup", "secret", "superviseur")

	for _, username := range []string{"bob", "sup"} {
		cookie := login(t, r, username, "secret")

		w := doRequest(t, r, http.MethodGet, "/api/users", "", cookie)
		assert.Equal(t, http.StatusForbidden, w.Code, username)

		w = doRequest(t, r, http.MethodPost, "/api/users",
			`{"username":"mallory","password":"pw","role":"admin"}`, cookie)
		assert.Equal(t, http.StatusForbidden, w.Code, username)
	}

	cookie := login(t, r, "admin", "secret")
	w := doRequest(t, r, http.MethodGet, "/api/users", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUserHashesPassword(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "secret", "admin")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/users",
		`{"username":"bob","password":"p1"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the password never appears in any response
	assert.NotContains(t, w.Body.String(), "p1")
	assert.NotContains(t, w.Body.String(), "password")

	var stored models.User
	require.NoError(t, database.Where("username = ?", "bob").First(&stored).Error)
	assert.Equal(t, "user", stored.Role)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))

	// credentials round-trip through the login endpoint
	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"p1"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUserValidatesRoleAndUniqueness(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "secret", "admin")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/users",
		`{"username":"bob","password":"pw","role":"chief"}`, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "role")

	w = doRequest(t, r, http.MethodPost, "/api/users",
		`{"username":"bob","password":"pw","role":"superviseur"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/users",
		`{"username":"bob","password":"other","role":"user"}`, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateUserEmptyPasswordLeavesHash(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "secret", "admin")
	bob := createUser(t, database, "bob", "oldpw", "user")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", bob.ID),
		`{"role":"superviseur","password":""}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, database.First(&stored, bob.ID).Error)
	assert.Equal(t, "superviseur", stored.Role)
	assert.Equal(t, bob.PasswordHash, stored.PasswordHash)

	// the old password still works
	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"oldpw"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUserPassword(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "secret", "admin")
	bob := createUser(t, database, "bob", "oldpw", "user")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", bob.ID),
		`{"password":"newpw"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"oldpw"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"newpw"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteUser(t *testing.T) {
	r, database := setupTest(t)
	admin := createUser(t, database, "admin", "secret", "admin")
	bob := createUser(t, database, "bob", "secret", "user")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", bob.ID), "", cookie)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/users", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	decodeBody(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", bob.ID), "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOwnAccountIsBlocked(t *testing.T) {
	r, database := setupTest(t)
	admin := createUser(t, database, "admin", "secret", "admin")
	cookie := login(t, r, "admin", "secret")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), "", cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserListNeverExposesPasswords(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "admin", "topsecret", "admin")
	createUser(t, database, "bob", "hunter2", "user")
	cookie := login(t, r, "admin", "topsecret")

	w := doRequest(t, r, http.MethodGet, "/api/users", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hunter2")
	assert.NotContains(t, body, "topsecret")
}
