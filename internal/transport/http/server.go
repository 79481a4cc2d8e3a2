package http

import (
	"github.com/gin-gonic/gin"

	"askmynotes/internal/bootstrap"
	"askmynotes/internal/transport/http/handler"
	"askmynotes/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Trace())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userHandler := handler.NewUserHandler(app.UserService)
	noteHandler := handler.NewNoteHandler(app.NoteService)
	aiHandler := handler.NewAIHandler(app.AnswerService, app.StudySetService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthIdentity(app.Config.Auth.JWTSecret))

	v1.POST("/users/sync", userHandler.Sync)
	v1.POST("/subjects/init", userHandler.InitSubjects)
	v1.GET("/subjects", userHandler.ListSubjects)

	v1.POST("/notes/upload", noteHandler.Upload)

	aiGroup := v1.Group("/ai")
	aiGroup.POST("/ask", aiHandler.Ask)
	aiGroup.GET("/history", aiHandler.History)
	aiGroup.POST("/study-tasks", aiHandler.StudyTasks)
	aiGroup.GET("/study-sets", aiHandler.ListStudySets)

	return router
}
