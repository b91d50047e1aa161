package handlers

import (
	"net/http"

	"skillswap/internal/middleware"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a member account and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"member": result.Member,
		"token":  result.Token,
	})
}

// Login authenticates a member and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"member": result.Member,
		"token":  result.Token,
	})
}

// Me returns the authenticated member's account record.
func (h *AuthHandler) Me(c *gin.Context) {
	member, err := h.authService.GetMember(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, member)
}

// Logout acknowledges the sign-out. Tokens are stateless, so the
// client discards its copy; nothing is revoked server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessResponseWithMessage(c, "Logged out", nil)
}
