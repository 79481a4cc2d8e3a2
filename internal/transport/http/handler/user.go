package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"askmynotes/internal/app"
	"askmynotes/internal/transport/http/middleware"
	"askmynotes/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type SyncRequest struct {
	Email string `json:"email" binding:"max=128"`
}

type InitSubjectsRequest struct {
	Subjects []string `json:"subjects" binding:"required"`
}

// Sync upserts the authenticated user and reports whether subject setup has
// been completed.
func (h *UserHandler) Sync(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	email := req.Email
	if email == "" {
		email = c.GetString(middleware.ContextEmailKey)
	}

	result, err := h.userService.Sync(userID, email)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "sync user failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *UserHandler) InitSubjects(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req InitSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	subjects, err := h.userService.InitSubjects(userID, req.Subjects)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSubjectsInitialized):
			response.Error(c, http.StatusBadRequest, response.CodeSubjectsInitialized, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create subjects failed")
		}
		return
	}
	response.OK(c, gin.H{"subjects": subjects})
}

func (h *UserHandler) ListSubjects(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	summaries, err := h.userService.ListSubjects(userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list subjects failed")
		}
		return
	}
	response.OK(c, gin.H{"subjects": summaries})
}
