package model

import (
	"time"
)

// Message chat message persisted in the message log.
// Immutable once written except for the read flag. History replay orders by
// timestamp ascending with the auto-increment ID as the tie-break, so
// insertion order wins for equal timestamps.
type Message struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID     string    `gorm:"type:varchar(64);not null;index" json:"room_id"`
	SenderName string    `gorm:"type:varchar(100);not null" json:"sender_name"`
	SenderRole string    `gorm:"type:varchar(20);not null" json:"sender_role"` // vendor, supplier
	Body       string    `gorm:"type:text;not null" json:"body"`
	Timestamp  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"timestamp"`
	IsRead     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_read"`
}

// TableName set name
func (Message) TableName() string {
	return "messages"
}
