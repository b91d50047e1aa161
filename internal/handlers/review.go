package handlers

import (
	"net/http"

	"skillswap/internal/middleware"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	RevieweeID string `json:"revieweeId" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
	SessionID  string `json:"sessionId"`
}

// CreateReview records a review written by the caller.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), middleware.MemberID(c), req.RevieweeID, req.SessionID, req.Comment, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// ListReceived returns reviews about a member along with their
// average rating.
func (h *ReviewHandler) ListReceived(c *gin.Context) {
	memberID := c.Param("memberId")

	reviews, err := h.reviewService.ListReceived(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	average, count, err := h.reviewService.AverageRating(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews":       reviews,
		"averageRating": average,
		"count":         count,
	})
}

// ListGiven returns reviews the caller has written.
func (h *ReviewHandler) ListGiven(c *gin.Context) {
	reviews, err := h.reviewService.ListGiven(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, reviews)
}

// DeleteReview removes a review written by the caller.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"), middleware.MemberID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Review deleted", nil)
}
