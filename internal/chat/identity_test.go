package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRoomID(t *testing.T) {
	assert.Equal(t, "room_3_17", DeriveRoomID(3, 17))
	assert.Equal(t, "room_3_17", DeriveRoomID(17, 3), "room identity must be commutative")
	assert.Equal(t, "room_5_5", DeriveRoomID(5, 5))
}

func TestDeriveRoomID_Stable(t *testing.T) {
	// Repeated derivations for the same pair never change
	first := DeriveRoomID(42, 7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, DeriveRoomID(42, 7))
		assert.Equal(t, first, DeriveRoomID(7, 42))
	}
}

func TestNormalizeRoomID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical id passes through", "room_3_17", "room_3_17"},
		{"legacy timestamp suffix stripped", "room_3_17_1721894400123", "room_3_17"},
		{"short numeric suffix kept", "room_3_17_123", "room_3_17_123"},
		{"fourteen digit suffix kept", "room_3_17_17218944001234", "room_3_17_17218944001234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRoomID(tt.input))
		})
	}
}

func TestNormalizeRoomID_Idempotent(t *testing.T) {
	once := NormalizeRoomID("room_1_2_1721894400123")
	assert.Equal(t, once, NormalizeRoomID(once))
}
