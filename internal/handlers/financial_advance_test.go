package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suivi-dev/suivi/internal/models"
)

func TestFinancialAdvanceLifecycle(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "alice", "secret", "user")
	cookie := login(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/projects",
		`{"identifier":"PRJ-FA","title":"Electrification","budget":2000000}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	decodeBody(t, w, &project)

	// two disbursements in chronological disorder
	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID),
		`{"reference_date":"2024-06-01","engagement":500000,"payment":100000}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var second models.FinancialAdvance
	decodeBody(t, w, &second)

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID),
		`{"reference_date":"2024-01-15","engagement":300000,"payment":0}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var first models.FinancialAdvance
	decodeBody(t, w, &first)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var advances []models.FinancialAdvance
	decodeBody(t, w, &advances)
	require.Len(t, advances, 2)
	// ordered by reference date, not insertion
	assert.Equal(t, first.ID, advances[0].ID)
	assert.Equal(t, second.ID, advances[1].ID)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/financial-advances/%d", first.ID),
		`{"payment":150000}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.FinancialAdvance
	decodeBody(t, w, &updated)
	assert.Equal(t, 150000.0, updated.Payment)
	assert.Equal(t, 300000.0, updated.Engagement)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/financial-advances/%d", second.ID), "", cookie)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID), "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &advances)
	assert.Len(t, advances, 1)
}

func TestFinancialAdvanceRequiresProject(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "alice", "secret", "user")
	cookie := login(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/projects/77/financial-advances",
		`{"reference_date":"2024-01-01","engagement":100,"payment":0}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/projects/77/financial-advances", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/financial-advances/77", `{"payment":1}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdvanceAmountsAcceptNumericStrings(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "alice", "secret", "user")
	cookie := login(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/projects",
		`{"identifier":"PRJ-FS","title":"Assainissement","budget":100}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	decodeBody(t, w, &project)

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID),
		`{"reference_date":"2024-02-01","engagement":"1000.25","payment":"0"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var advance models.FinancialAdvance
	decodeBody(t, w, &advance)
	assert.Equal(t, 1000.25, advance.Engagement)
	assert.Zero(t, advance.Payment)
}

func TestFinancialAdvanceValidation(t *testing.T) {
	r, database := setupTest(t)
	createUser(t, database, "alice", "secret", "user")
	cookie := login(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/projects",
		`{"identifier":"PRJ-FV","title":"Forage","budget":100}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	decodeBody(t, w, &project)

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID),
		`{"engagement":100,"payment":0}`, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reference_date")

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/financial-advances", project.ID),
		`{"reference_date":"June 1st","engagement":100,"payment":0}`, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reference_date")
}
