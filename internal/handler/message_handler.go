package handler

import (
	"github.com/gin-gonic/gin"

	"rawkart/internal/chat"
	"rawkart/internal/repository"
	"rawkart/pkg/utils"
)

// MessageHandler chat history handler. The realtime path goes over the
// websocket; these endpoints back chat list previews and read receipts.
type MessageHandler struct {
	messageRepo  repository.MessageRepository
	coordinator  *chat.Coordinator
	historyLimit int
}

// NewMessageHandler creates a message handler
func NewMessageHandler(messageRepo repository.MessageRepository, coordinator *chat.Coordinator, historyLimit int) *MessageHandler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &MessageHandler{
		messageRepo:  messageRepo,
		coordinator:  coordinator,
		historyLimit: historyLimit,
	}
}

// History returns recent messages of a room, oldest first, plus whether the
// room is currently closed
func (h *MessageHandler) History(c *gin.Context) {
	roomID := chat.NormalizeRoomID(c.Param("roomID"))
	if roomID == "" {
		utils.Error(c, utils.CodeInvalidParam, "missing room id")
		return
	}

	messages, err := h.messageRepo.FetchRecent(c.Request.Context(), roomID, h.historyLimit)
	if err != nil {
		utils.Error(c, utils.CodeDatabaseError, "failed to load messages")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"room_id":  roomID,
		"messages": messages,
		"closed":   h.coordinator.RoomClosed(roomID),
	})
}

// MarkRead marks every unread message in a room as read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	roomID := chat.NormalizeRoomID(c.Param("roomID"))
	if roomID == "" {
		utils.Error(c, utils.CodeInvalidParam, "missing room id")
		return
	}

	if err := h.messageRepo.MarkRead(c.Request.Context(), roomID); err != nil {
		utils.Error(c, utils.CodeDatabaseError, "failed to mark messages read")
		return
	}

	utils.SuccessResponse(c, nil)
}
