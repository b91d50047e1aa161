package handlers

import (
	"net/http"

	"skillswap/internal/middleware"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type SwapHandler struct {
	swapService *services.SwapService
}

func NewSwapHandler(swapService *services.SwapService) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

type createSwapRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Message     string `json:"message"`
	Online      bool   `json:"online"`
	Offline     bool   `json:"offline"`
}

type confirmSwapRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateRequest sends a new swap request to another member.
func (h *SwapHandler) CreateRequest(c *gin.Context) {
	var req createSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	modes := services.SessionModes{Online: req.Online, Offline: req.Offline}

	request, err := h.swapService.CreateRequest(c.Request.Context(), middleware.MemberID(c), req.RecipientID, req.Message, modes)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, request)
}

// ListIncoming returns swap requests addressed to the caller.
func (h *SwapHandler) ListIncoming(c *gin.Context) {
	requests, err := h.swapService.ListIncoming(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

// ListOutgoing returns swap requests the caller has sent.
func (h *SwapHandler) ListOutgoing(c *gin.Context) {
	requests, err := h.swapService.ListOutgoing(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

// GetRequest returns a single swap request.
func (h *SwapHandler) GetRequest(c *gin.Context) {
	request, err := h.swapService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	memberID := middleware.MemberID(c)
	if request.SenderProfileID != memberID && request.RecipientProfileID != memberID {
		utils.ForbiddenResponse(c, "Access denied")
		return
	}

	utils.SuccessResponse(c, request)
}

// Confirm accepts a pending swap request with meeting details.
func (h *SwapHandler) Confirm(c *gin.Context) {
	var req confirmSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	details := services.MeetingDetails{
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Notes:    req.Notes,
	}

	request, err := h.swapService.Confirm(c.Request.Context(), c.Param("id"), middleware.MemberID(c), details)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, request)
}

// Reject declines a pending swap request.
func (h *SwapHandler) Reject(c *gin.Context) {
	request, err := h.swapService.Reject(c.Request.Context(), c.Param("id"), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, request)
}
