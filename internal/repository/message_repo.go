package repository

import (
	"context"

	"gorm.io/gorm"

	"rawkart/internal/model"
)

// MessageRepository durable chat message log. Satisfies the coordinator's
// MessageLog interface.
type MessageRepository interface {
	// Append persists one message
	Append(ctx context.Context, msg *model.Message) error

	// FetchRecent returns the last messages of a room, chronological,
	// oldest first; ties on timestamp resolve by insertion order
	FetchRecent(ctx context.Context, roomID string, limit int) ([]model.Message, error)

	// MarkRead marks all unread messages in a room as read
	MarkRead(ctx context.Context, roomID string) error

	// CountByRoom counts persisted messages for a room
	CountByRoom(ctx context.Context, roomID string) (int64, error)
}

// messageRepository message repository implementation
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Append persists one message
func (r *messageRepository) Append(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FetchRecent returns the last messages of a room, oldest first
func (r *messageRepository) FetchRecent(ctx context.Context, roomID string, limit int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; replay wants chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead marks all unread messages in a room as read
func (r *messageRepository) MarkRead(ctx context.Context, roomID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("room_id = ?", roomID).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

// CountByRoom counts persisted messages for a room
func (r *messageRepository) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
