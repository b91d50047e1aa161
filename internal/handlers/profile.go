package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"skillswap/internal/config"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	pageLimit      int64
}

func NewProfileHandler(profileService *services.ProfileService, cfg config.ProfilesConfig) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		pageLimit:      cfg.PageLimit,
	}
}

type saveProfileRequest struct {
	FullName            string `json:"fullName" binding:"required"`
	Bio                 string `json:"bio"`
	ProfilePicture      string `json:"profilePicture"`
	SkillsToTeach       string `json:"skillsToTeach"`
	SkillsToLearn       string `json:"skillsToLearn"`
	IsAvailable         bool   `json:"isAvailable"`
	AvailabilityDetails string `json:"availabilityDetails"`
	AvailabilityDays    string `json:"availabilityDays"`
	GithubID            string `json:"githubId"`
	LinkedinURL         string `json:"linkedinUrl"`
	InstagramID         string `json:"instagramId"`
}

// SaveProfile creates or replaces the caller's own profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !utils.ValidateAvailabilityDays(req.AvailabilityDays) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid availability days")
		return
	}

	profile := &models.Profile{
		FullName:            req.FullName,
		Bio:                 req.Bio,
		ProfilePicture:      req.ProfilePicture,
		SkillsToTeach:       req.SkillsToTeach,
		SkillsToLearn:       req.SkillsToLearn,
		IsAvailable:         req.IsAvailable,
		AvailabilityDetails: req.AvailabilityDetails,
		AvailabilityDays:    req.AvailabilityDays,
		GithubID:            req.GithubID,
		LinkedinURL:         req.LinkedinURL,
		InstagramID:         req.InstagramID,
	}

	saved, err := h.profileService.SaveProfile(c.Request.Context(), middleware.MemberID(c), profile)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, saved)
}

// GetProfile returns a single profile by id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// GetMyProfile returns the caller's own profile. A member who has
// never saved one gets an empty editable shell rather than an error;
// the record is created on the first save.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	memberID := middleware.MemberID(c)

	profile, err := h.profileService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.SuccessResponse(c, &models.Profile{ID: memberID})
			return
		}
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// ListProfiles returns a page of profiles for browsing.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", strconv.FormatInt(h.pageLimit, 10)), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	if limit <= 0 || limit > h.pageLimit {
		limit = h.pageLimit
	}
	if skip < 0 {
		skip = 0
	}

	page, err := h.profileService.ListProfiles(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, page.Items, &utils.Meta{
		Limit:   limit,
		Skip:    skip,
		HasNext: page.HasNext,
	})
}

// SearchProfiles filters profiles by term, skill direction, and
// availability day.
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	term := c.Query("q")
	filter := services.SkillFilter(c.DefaultQuery("filter", "all"))
	day := c.Query("day")

	switch filter {
	case services.FilterAll, services.FilterTeach, services.FilterLearn:
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid skill filter")
		return
	}

	profiles, err := h.profileService.SearchProfiles(c.Request.Context(), term, filter, day)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profiles)
}
