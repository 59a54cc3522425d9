package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira/chat-relay/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ChatRepository interface {
	Create(ctx context.Context, record *domain.ChatRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatRecord, error)
}

type Repositories struct {
	User UserRepository
	Chat ChatRepository
}
