package handlers

import (
	"context"
	"net/http"

	"skillswap/internal/config"
	"skillswap/internal/middleware"
	"skillswap/internal/services"
	"skillswap/internal/stream"
	"skillswap/internal/utils"
	"skillswap/pkg/logger"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
)

// StreamHandler upgrades a conversation to a WebSocket stream that
// polls the message store and pushes snapshots.
type StreamHandler struct {
	chatService *services.ChatService
	hub         *stream.Hub
	cfg         config.ChatConfig
	upgrader    gorillaws.Upgrader
}

func NewStreamHandler(chatService *services.ChatService, hub *stream.Hub, cfg config.ChatConfig) *StreamHandler {
	return &StreamHandler{
		chatService: chatService,
		hub:         hub,
		cfg:         cfg,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origin is enforced by the CORS middleware on the
				// upgrade request
				return true
			},
		},
	}
}

// HandleConversation opens the stream for the conversation between
// the caller and the peer in the path.
func (h *StreamHandler) HandleConversation(c *gin.Context) {
	memberID := middleware.MemberID(c)
	peerID := c.Param("peerId")

	if peerID == "" || peerID == memberID {
		utils.ErrorResponse(c, http.StatusBadRequest, "A valid peer id is required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	// The request context dies when this handler returns; the stream
	// outlives it and is torn down by the read pump on disconnect.
	client := stream.NewClient(conn, h.hub, h.chatService, memberID, peerID, h.cfg.PollInterval)
	client.Start(context.Background())
}

// Stats reports hub statistics.
func (h *StreamHandler) Stats(c *gin.Context) {
	utils.SuccessResponse(c, h.hub.GetStats())
}
