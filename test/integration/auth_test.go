package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"webresume_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/auth/status/", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"is_authenticated":false,"is_staff":false}`, body)

	token, _ := helpers.CreateAndLoginAdmin(t, ts)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth/status/", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var status struct {
		IsAuthenticated bool   `json:"is_authenticated"`
		Username        string `json:"username"`
		IsStaff         bool   `json:"is_staff"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.True(t, status.IsAuthenticated)
	assert.Equal(t, "admin", status.Username)
	assert.True(t, status.IsStaff)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/logout/", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"status":"success"`)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)
	helpers.CreateUser(t, ts, "bob", "correct-password", "user")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"username": "bob",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"username": "nobody",
		"password": "whatever-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_InvalidTokenRejected(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/resumes/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
}
