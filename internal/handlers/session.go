package handlers

import (
	"net/http"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type createSessionRequest struct {
	ParticipantID     string    `json:"participantId" binding:"required"`
	ScheduledDateTime time.Time `json:"scheduledDateTime" binding:"required"`
	GoogleMeetLink    string    `json:"googleMeetLink" binding:"required"`
}

type updateSessionRequest struct {
	ScheduledDateTime time.Time `json:"scheduledDateTime" binding:"required"`
	GoogleMeetLink    string    `json:"googleMeetLink" binding:"required"`
	SessionStatus     string    `json:"sessionStatus" binding:"required"`
}

// CreateSession schedules a new session hosted by the caller.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), middleware.MemberID(c), req.ParticipantID, req.GoogleMeetLink, req.ScheduledDateTime)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, session)
}

// ListSessions returns the caller's sessions as host or participant.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, sessions)
}

// GetSession returns a single session the caller belongs to.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	memberID := middleware.MemberID(c)
	if session.HostID != memberID && session.ParticipantID != memberID {
		utils.ForbiddenResponse(c, "Access denied")
		return
	}

	utils.SuccessResponse(c, session)
}

// UpdateSession replaces the session's schedule, link, and status.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.UpdateSession(c.Request.Context(), c.Param("id"), middleware.MemberID(c), req.GoogleMeetLink, req.ScheduledDateTime, models.SessionStatus(req.SessionStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, session)
}

// DeleteSession removes a session.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessionService.DeleteSession(c.Request.Context(), c.Param("id"), middleware.MemberID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Session deleted", nil)
}

// EnterSession applies the time gate. Before the scheduled start the
// response carries live=false and the scheduled time; from the start
// on it carries the meeting link and the elapsed duration.
func (h *SessionHandler) EnterSession(c *gin.Context) {
	access, err := h.sessionService.EnterSession(c.Request.Context(), c.Param("id"), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, access)
}
