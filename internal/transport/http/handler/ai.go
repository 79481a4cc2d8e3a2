package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"askmynotes/internal/app"
	"askmynotes/internal/transport/http/middleware"
	"askmynotes/internal/transport/http/response"
)

type AIHandler struct {
	answerService   *app.AnswerService
	studySetService *app.StudySetService
}

func NewAIHandler(answerService *app.AnswerService, studySetService *app.StudySetService) *AIHandler {
	return &AIHandler{
		answerService:   answerService,
		studySetService: studySetService,
	}
}

type AskRequest struct {
	SubjectName string `json:"subject_name" binding:"required"`
	Question    string `json:"question" binding:"required"`
}

type StudyTasksRequest struct {
	SubjectName string `json:"subject_name" binding:"required"`
}

func (h *AIHandler) Ask(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.answerService.Ask(c.Request.Context(), app.AskInput{
		UserID:      userID,
		SubjectName: req.SubjectName,
		Question:    req.Question,
	})
	if err != nil {
		h.writeAIError(c, err, "ask failed")
		return
	}
	response.OK(c, result)
}

func (h *AIHandler) History(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	subjectName := strings.TrimSpace(c.Query("subject_name"))
	if subjectName == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "subject_name required")
		return
	}
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	turns, err := h.answerService.History(c.Request.Context(), userID, subjectName, limit)
	if err != nil {
		h.writeAIError(c, err, "fetch history failed")
		return
	}
	response.OK(c, gin.H{"history": turns})
}

func (h *AIHandler) StudyTasks(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req StudyTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	set, err := h.studySetService.Generate(c.Request.Context(), app.GenerateInput{
		UserID:      userID,
		SubjectName: req.SubjectName,
	})
	if err != nil {
		h.writeAIError(c, err, "generate study tasks failed")
		return
	}
	response.OK(c, set)
}

func (h *AIHandler) ListStudySets(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	subjectName := strings.TrimSpace(c.Query("subject_name"))
	if subjectName == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "subject_name required")
		return
	}

	sets, err := h.studySetService.ListSets(userID, subjectName)
	if err != nil {
		h.writeAIError(c, err, "list study sets failed")
		return
	}
	response.OK(c, gin.H{"study_sets": sets})
}

// writeAIError maps pipeline errors onto the response envelope. Upstream and
// parse failures stay distinct so clients can decide whether to back off.
func (h *AIHandler) writeAIError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrEmptyCorpus):
		response.Error(c, http.StatusBadRequest, response.CodeEmptyCorpus, err.Error())
	case errors.Is(err, app.ErrSubjectNotFound), errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrUpstreamRateLimit):
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, err.Error())
	case errors.Is(err, app.ErrUpstreamFailure):
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
	case errors.Is(err, app.ErrMalformedGeneration):
		response.Error(c, http.StatusBadGateway, response.CodeMalformedGeneration, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
