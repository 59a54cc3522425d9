package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira/chat-relay/internal/domain"
	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *chatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, record *domain.ChatRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByUser returns the user's records in creation order. Records carry
// time-ordered V7 IDs, so the id tie-break is exact when timestamps collide.
// A limit <= 0 means no limit.
func (r *chatRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatRecord, error) {
	var records []*domain.ChatRecord
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
