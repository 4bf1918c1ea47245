package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"webresume_backend/internal/models"
	"webresume_backend/internal/relay"
	"webresume_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validMessage = map[string]string{
	"sender_name":  "Alice",
	"sender_email": "alice@example.com",
	"message":      "Hello!",
}

func TestMessageCreate_RelayedOnce(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/messages/", "", validMessage)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID     string `json:"id"`
			IsRead bool   `json:"is_read"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Message sent successfully", resp.Message)
	assert.NotEmpty(t, resp.Data.ID)
	assert.False(t, resp.Data.IsRead)

	sent := ts.Sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, relay.ParseModeMarkdown, sent[0].ParseMode)
	assert.Contains(t, sent[0].Text, "Alice")
}

func TestMessageCreate_RelayFailureStillPersists(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.Sender.FailAll(true)

	res, body := ts.SendRequest(t, http.MethodPost, "/messages/", "", validMessage)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"success":true`)

	// markdown -> chat id, plain -> chat id, plain -> @username
	sent := ts.Sender.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, int64(42), sent[1].ChatID)
	assert.Empty(t, sent[1].ParseMode)
	assert.Equal(t, "@resume_owner", sent[2].Username)

	var messages []models.Message
	require.NoError(t, ts.DB.Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].IsRead)
	assert.Equal(t, "alice@example.com", messages[0].SenderEmail)
}

func TestMessageCreate_Validation(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/messages/", "", map[string]string{
		"sender_name":  "Alice",
		"sender_email": "not-an-email",
		"message":      "Hi",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, `"sender_email"`)
	assert.Empty(t, ts.Sender.Sent())

	var count int64
	ts.DB.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestMessageAdminRoutes(t *testing.T) {
	ts := helpers.NewTestServer(t)

	_, body := ts.SendRequest(t, http.MethodPost, "/api/messages/", "", validMessage)
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	id := created.Data.ID

	// аноним и обычный пользователь не видят сообщения
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/messages/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	userToken, _ := helpers.CreateAndLoginUser(t, ts, "visitor")
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/messages/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	res, body = ts.SendRequest(t, http.MethodGet, "/api/messages/", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, id)
	assert.Equal(t, "1", res.Header.Get("X-Unread-Count"))

	for i := 0; i < 2; i++ {
		res, body = ts.SendRequest(t, http.MethodPost, "/api/messages/"+id+"/mark_as_read/", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.JSONEq(t, `{"status":"message marked as read"}`, body)
	}

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/messages/", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "0", res.Header.Get("X-Unread-Count"))

	var msg models.Message
	require.NoError(t, ts.DB.First(&msg, "id = ?", id).Error)
	assert.True(t, msg.IsRead)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/messages/missing/mark_as_read/", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/messages/"+id+"/", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/messages/"+id+"/", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSendMessage_MissingFields(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/send-message/", "", map[string]string{
		"message": "Hi",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"success":false,"message":"Missing required fields: sender_name, sender_email"}`, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/send-message/", "", "{broken")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, `"success":false`)
}

func TestSendMessage_Success(t *testing.T) {
	ts := helpers.NewTestServer(t)
	ts.Sender.FailAll(true)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/send-message/", "", validMessage)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"success":true,"message":"Message sent successfully"}`, body)

	var count int64
	ts.DB.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
