package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mira/chat-relay/internal/domain"
	"github.com/mira/chat-relay/internal/llm"
	"github.com/mira/chat-relay/internal/repository"
	"gorm.io/datatypes"
)

// Provider is the external text-generation collaborator. The real one lives
// in internal/llm; tests swap in a fake.
type Provider interface {
	Complete(ctx context.Context, prompt string) (*llm.Completion, error)
}

// ChatService relays a user's message to the provider and persists the
// exchange. The provider sees only the current message; history is not
// forwarded.
type ChatService struct {
	chatRepo        repository.ChatRepository
	provider        Provider
	providerTimeout time.Duration
}

func NewChatService(chatRepo repository.ChatRepository, provider Provider, providerTimeout time.Duration) *ChatService {
	return &ChatService{
		chatRepo:        chatRepo,
		provider:        provider,
		providerTimeout: providerTimeout,
	}
}

type completionMetadata struct {
	Model            string `json:"model,omitempty"`
	PromptTokens     int64  `json:"prompt_tokens,omitempty"`
	CompletionTokens int64  `json:"completion_tokens,omitempty"`
}

// SendMessage calls the provider and, only on success, writes exactly one
// ChatRecord. A provider failure leaves the database untouched.
func (s *ChatService) SendMessage(ctx context.Context, user *domain.User, message string) (*domain.ChatRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	completion, err := s.provider.Complete(callCtx, message)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(completionMetadata{
		Model:            completion.Model,
		PromptTokens:     completion.PromptTokens,
		CompletionTokens: completion.CompletionTokens,
	})
	if err != nil {
		return nil, err
	}

	// V7 IDs are time-ordered, so the history query's id tie-break keeps
	// insertion order even for records sharing a timestamp.
	record := &domain.ChatRecord{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      user.ID,
		UserMessage: message,
		BotResponse: completion.Text,
		Metadata:    datatypes.JSON(metadata),
		CreatedAt:   time.Now(),
	}

	if err := s.chatRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// History returns the user's exchanges in creation order. Each call is a
// fresh snapshot.
func (s *ChatService) History(ctx context.Context, user *domain.User, limit int) ([]*domain.ChatRecord, error) {
	return s.chatRepo.ListByUser(ctx, user.ID, limit)
}
