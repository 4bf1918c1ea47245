package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"webresume_backend/internal/auth"
	"webresume_backend/internal/models"

	"github.com/stretchr/testify/require"
)

// CreateUser создает пользователя с захешированным паролем
func CreateUser(t *testing.T, ts *TestServer, username, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, ts.DB.Create(user).Error)
	return user
}

// Login логинит через API и возвращает access token
func Login(t *testing.T, ts *TestServer, username, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// CreateAndLoginAdmin - staff-пользователь с токеном
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts, "admin", "admin-password-1", models.UserRoleAdmin)
	return Login(t, ts, "admin", "admin-password-1"), user
}

// CreateAndLoginUser - обычный пользователь с токеном
func CreateAndLoginUser(t *testing.T, ts *TestServer, username string) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts, username, "user-password-1", models.UserRoleUser)
	return Login(t, ts, username, "user-password-1"), user
}
