package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mira/chat-relay/internal/domain"
	"github.com/mira/chat-relay/internal/llm"
	"github.com/mira/chat-relay/internal/repository/postgres"
	"github.com/mira/chat-relay/internal/service"
	"github.com/mira/chat-relay/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T) (*service.ChatService, *testutil.FakeProvider, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	provider := testutil.NewFakeProvider()
	services := service.NewServices(repos, provider, cfg)
	return services.Chat, provider, testDB
}

func TestChatService_SendMessage(t *testing.T) {
	chatService, provider, testDB := newChatService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	provider.SetReply("hello from the model")
	start := time.Now()

	record, err := chatService.SendMessage(ctx, user, "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", record.UserMessage)
	assert.Equal(t, "hello from the model", record.BotResponse)
	assert.Equal(t, user.ID, record.UserID)
	assert.False(t, record.CreatedAt.Before(start), "timestamp must not precede the call")

	// The provider gets the raw message only, no history.
	assert.Equal(t, []string{"hello"}, provider.Prompts())

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.ChatRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestChatService_SendMessage_ProviderFailure(t *testing.T) {
	chatService, provider, testDB := newChatService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "timeout", err: fmt.Errorf("%w: deadline exceeded", llm.ErrTimeout), wantErr: llm.ErrTimeout},
		{name: "provider error", err: fmt.Errorf("%w: status 500", llm.ErrProvider), wantErr: llm.ErrProvider},
		{name: "network error", err: fmt.Errorf("%w: connection refused", llm.ErrNetwork), wantErr: llm.ErrNetwork},
		{name: "malformed response", err: llm.ErrMalformedResponse, wantErr: llm.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider.SetError(tt.err)

			_, err := chatService.SendMessage(ctx, user, "hello")
			assert.ErrorIs(t, err, tt.wantErr)

			// A failed relay call never writes a record.
			var count int64
			require.NoError(t, testDB.DB.Model(&domain.ChatRecord{}).Count(&count).Error)
			assert.EqualValues(t, 0, count)
		})
	}
}

func TestChatService_History_OrderAndIsolation(t *testing.T) {
	chatService, provider, testDB := newChatService(t)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)

	// Interleave sends from both users.
	sends := []struct {
		user    *domain.User
		message string
	}{
		{alice, "alice 1"},
		{bob, "bob 1"},
		{alice, "alice 2"},
		{bob, "bob 2"},
		{alice, "alice 3"},
	}
	for _, s := range sends {
		provider.SetReply("reply to " + s.message)
		_, err := chatService.SendMessage(ctx, s.user, s.message)
		require.NoError(t, err)
	}

	history, err := chatService.History(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	for i, want := range []string{"alice 1", "alice 2", "alice 3"} {
		assert.Equal(t, want, history[i].UserMessage)
		assert.Equal(t, "reply to "+want, history[i].BotResponse)
		assert.Equal(t, alice.ID, history[i].UserID)
	}

	bobHistory, err := chatService.History(ctx, bob, 0)
	require.NoError(t, err)
	require.Len(t, bobHistory, 2)
}
