package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"rawkart/internal/model"
)

func setupRepoTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return gormDB, mock
}

func TestMessageRepository_Append(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewMessageRepository(db)

	ts := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	msg := &model.Message{
		RoomID:     "room_1_2",
		SenderName: "Ravi",
		SenderRole: "vendor",
		Body:       "hello",
		Timestamp:  ts,
	}
	err := repo.Append(context.Background(), msg)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FetchRecent_ChronologicalOrder(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewMessageRepository(db)

	now := time.Now()
	// The query returns newest-first for the LIMIT
	rows := sqlmock.NewRows([]string{"id", "room_id", "sender_name", "sender_role", "body", "timestamp", "is_read"}).
		AddRow(3, "room_1_2", "Sita", "supplier", "third", now, false).
		AddRow(2, "room_1_2", "Ravi", "vendor", "second", now.Add(-time.Minute), false).
		AddRow(1, "room_1_2", "Ravi", "vendor", "first", now.Add(-2*time.Minute), true)

	mock.ExpectQuery("SELECT (.+) FROM `messages` WHERE room_id = (.+) ORDER BY timestamp DESC, id DESC").
		WithArgs("room_1_2", 50).
		WillReturnRows(rows)

	messages, err := repo.FetchRecent(context.Background(), "room_1_2", 50)
	assert.NoError(t, err)
	assert.Len(t, messages, 3)

	// Callers see oldest first
	assert.Equal(t, "first", messages[0].Body)
	assert.Equal(t, "second", messages[1].Body)
	assert.Equal(t, "third", messages[2].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_FetchRecent_Empty(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewMessageRepository(db)

	rows := sqlmock.NewRows([]string{"id", "room_id", "sender_name", "sender_role", "body", "timestamp", "is_read"})
	mock.ExpectQuery("SELECT (.+) FROM `messages`").
		WithArgs("room_9_10", 50).
		WillReturnRows(rows)

	messages, err := repo.FetchRecent(context.Background(), "room_9_10", 50)
	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `messages` SET `is_read`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.MarkRead(context.Background(), "room_1_2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_CountByRoom(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `messages`").
		WithArgs("room_1_2").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	count, err := repo.CountByRoom(context.Background(), "room_1_2")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
