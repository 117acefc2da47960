package chat

import (
	"rawkart/internal/model"
)

// Role participant role inside a chat room
type Role string

// Roles
const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// SystemSender author name used for synthetic coordinator messages
const SystemSender = "System"

// Event is one outbound frame delivered to a session. The set of variants is
// closed so dispatch over event types stays exhaustive.
type Event interface {
	// Name returns the wire event name
	Name() string
}

// PreviousMessages history replay, delivered point-to-point on join
type PreviousMessages struct {
	RoomID   string          `json:"room_id"`
	Messages []model.Message `json:"messages"`
}

// Name returns the wire event name
func (PreviousMessages) Name() string { return "previous_messages" }

// MessageReceived a chat message broadcast to every room member
type MessageReceived struct {
	Message model.Message `json:"message"`
}

// Name returns the wire event name
func (MessageReceived) Name() string { return "receive_message" }

// ClosePayload reason attached to a room closure so clients can offer
// "request again"
type ClosePayload struct {
	OrderID    uint64 `json:"order_id"`
	ItemName   string `json:"item_name"`
	SupplierID uint64 `json:"supplier_id"`
	Message    string `json:"message"`
}

// ChatClosed broadcast when the order behind a room is deleted. Synthetic,
// authored by System, never persisted to the message log.
type ChatClosed struct {
	RoomID string       `json:"room_id"`
	Reason ClosePayload `json:"reason"`
}

// Name returns the wire event name
func (ChatClosed) Name() string { return "chat_closed" }

// NewRequestNotification delivered to a supplier's notification room when a
// vendor creates a purchase request
type NewRequestNotification struct {
	Order   *model.Order `json:"order"`
	Message string       `json:"message"`
}

// Name returns the wire event name
func (NewRequestNotification) Name() string { return "new_request_notification" }

// SystemNotice one-off room-scoped announcement (e.g. the legacy
// "supplier has joined" gate notice)
type SystemNotice struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

// Name returns the wire event name
func (SystemNotice) Name() string { return "system_notice" }
