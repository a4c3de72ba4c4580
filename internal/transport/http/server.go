package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"email-rag/internal/rag"
	"email-rag/internal/transport/http/handler"
	"email-rag/internal/transport/http/middleware"
)

// NewRouter wires the API routes. The transport layer owns timeouts and
// request shaping; all retrieval and ingestion logic stays in the rag
// package.
func NewRouter(ginMode string, ingestor *rag.Ingestor, answerer *rag.Answerer, pingStore func(ctx context.Context) error) *gin.Engine {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	healthHandler := handler.NewHealthHandler(pingStore)
	emailHandler := handler.NewEmailHandler(ingestor)
	questionHandler := handler.NewQuestionHandler(answerer)

	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.POST("/store-email", emailHandler.StoreEmail)
	api.POST("/ask-question", questionHandler.AskQuestion)

	return router
}
