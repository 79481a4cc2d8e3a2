package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askmynotes/internal/app"
	"askmynotes/internal/transport/http/middleware"
	"askmynotes/internal/transport/http/response"
)

const maxUploadSize = 10 << 20 // 10 MB

type NoteHandler struct {
	noteService *app.NoteService
}

func NewNoteHandler(noteService *app.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// Upload accepts a multipart form with "file" and "subject_name", extracts
// the text and appends one note to the subject's corpus.
func (h *NoteHandler) Upload(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	subjectName := strings.TrimSpace(c.PostForm("subject_name"))
	if subjectName == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "subject_name required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	result, err := h.noteService.Ingest(c.Request.Context(), app.IngestInput{
		UserID:      userID,
		SubjectName: subjectName,
		Filename:    file.Filename,
		Data:        data,
		MimeType:    file.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoExtractableText):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSubjectNotFound), errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed: "+err.Error())
		}
		return
	}

	response.OK(c, result)
}
