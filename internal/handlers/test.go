package handlers

import (
	"net/http"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/services"
	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	testService *services.TestService
}

func NewTestHandler(testService *services.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

type questionPayload struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type createTestRequest struct {
	SessionID string            `json:"sessionId" binding:"required"`
	TestTitle string            `json:"testTitle" binding:"required"`
	Questions []questionPayload `json:"questions" binding:"required"`
}

type updateTestRequest struct {
	TestTitle string            `json:"testTitle" binding:"required"`
	Questions []questionPayload `json:"questions" binding:"required"`
}

type submitTestRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

func toQuestions(payload []questionPayload) []models.Question {
	questions := make([]models.Question, len(payload))
	for i, q := range payload {
		questions[i] = models.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return questions
}

// CreateTest stores a new test authored by the caller.
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req createTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	test, err := h.testService.CreateTest(c.Request.Context(), middleware.MemberID(c), req.SessionID, req.TestTitle, toQuestions(req.Questions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, test)
}

// ListForSession returns the tests on a session visible to the caller.
func (h *TestHandler) ListForSession(c *gin.Context) {
	tests, err := h.testService.ListForSession(c.Request.Context(), c.Param("id"), middleware.MemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tests)
}

// GetTest returns a single test. Learners see unsubmitted tests with
// the answer key stripped.
func (h *TestHandler) GetTest(c *gin.Context) {
	test, err := h.testService.GetTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if test.TutorID != middleware.MemberID(c) && !test.Submitted() {
		stripped := services.StripAnswerKey(*test)
		test = &stripped
	}

	utils.SuccessResponse(c, test)
}

// UpdateTest replaces an unsubmitted test's title and questions.
func (h *TestHandler) UpdateTest(c *gin.Context) {
	var req updateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	test, err := h.testService.UpdateTest(c.Request.Context(), c.Param("id"), middleware.MemberID(c), req.TestTitle, toQuestions(req.Questions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, test)
}

// SubmitTest grades the caller's answers. A test can be submitted
// only once.
func (h *TestHandler) SubmitTest(c *gin.Context) {
	var req submitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	test, err := h.testService.Submit(c.Request.Context(), c.Param("id"), middleware.MemberID(c), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, test)
}

// DeleteTest removes a test authored by the caller.
func (h *TestHandler) DeleteTest(c *gin.Context) {
	if err := h.testService.DeleteTest(c.Request.Context(), c.Param("id"), middleware.MemberID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Test deleted", nil)
}
