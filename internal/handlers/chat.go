package handlers

import (
	"net/http"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type sendMessageRequest struct {
	Content  string           `json:"content"`
	FileData *models.FileData `json:"fileData"`
}

// GetConversation returns the full conversation with a peer, oldest
// first. Fetching also marks the peer's unread messages as read.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	peerID := c.Param("peerId")
	if peerID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Peer id is required")
		return
	}

	messages, err := h.chatService.LoadConversation(c.Request.Context(), middleware.MemberID(c), peerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, messages)
}

// SendMessage appends a message to the conversation with a peer.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	peerID := c.Param("peerId")
	if peerID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Peer id is required")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), middleware.MemberID(c), peerID, req.Content, req.FileData)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, message)
}

// UnreadCounts returns the number of unread messages per sender.
func (h *ChatHandler) UnreadCounts(c *gin.Context) {
	counts, err := h.chatService.UnreadCount(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, counts)
}
