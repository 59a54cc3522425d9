package handlers_test

import (
	"net/http"
	"testing"

	"github.com/mira/chat-relay/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end pass through the public surface: register, login, chat, history.
func TestRegisterLoginChatFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	resp = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var tokenResp testutil.TokenResponse
	testutil.AssertJSONResponse(t, resp, &tokenResp)
	require.NotEmpty(t, tokenResp.AccessToken)
	assert.Equal(t, "bearer", tokenResp.TokenType)

	ts.Provider.SetReply("hello alice")
	resp = doJSON(t, http.MethodPost, ts.APIURL("/chat"), tokenResp.AccessToken, map[string]string{
		"message": "hello",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var chat chatResponse
	testutil.AssertJSONResponse(t, resp, &chat)
	assert.Equal(t, "hello", chat.UserMessage)
	assert.Equal(t, "hello alice", chat.BotResponse)

	resp = doJSON(t, http.MethodGet, ts.APIURL("/chat/history"), tokenResp.AccessToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var history []chatResponse
	testutil.AssertJSONResponse(t, resp, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].UserMessage)
	assert.Equal(t, "hello alice", history[0].BotResponse)
}
