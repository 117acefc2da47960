package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rawkart/internal/model"
)

func TestOrderRepository_FindActive_None(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `orders`").
		WithArgs(uint64(1), uint64(2), uint64(3), model.OrderStatusClosed, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := repo.FindActive(context.Background(), 1, 2, 3)
	assert.NoError(t, err, "no active order is the normal path, not a failure")
	assert.Nil(t, order)
}

func TestOrderRepository_FindActive_Found(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "vendor_id", "supplier_id", "inventory_item_id", "chat_room_id", "status"}).
		AddRow(11, 1, 2, 3, "room_1_2", model.OrderStatusPending)

	mock.ExpectQuery("SELECT (.+) FROM `orders`").
		WithArgs(uint64(1), uint64(2), uint64(3), model.OrderStatusClosed, 1).
		WillReturnRows(rows)

	order, err := repo.FindActive(context.Background(), 1, 2, 3)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, uint64(11), order.ID)
	assert.Equal(t, "room_1_2", order.ChatRoomID)
}

func TestOrderRepository_CountActiveByRoom(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WithArgs("room_1_2", model.OrderStatusClosed).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	count, err := repo.CountActiveByRoom(context.Background(), "room_1_2")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOrderRepository_Delete(t *testing.T) {
	db, mock := setupRepoTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `orders`").
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 11)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
