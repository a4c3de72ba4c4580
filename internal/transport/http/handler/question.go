package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"email-rag/internal/rag"
	"email-rag/internal/transport/http/response"
)

type QuestionHandler struct {
	answerer *rag.Answerer
}

type AskQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewQuestionHandler(answerer *rag.Answerer) *QuestionHandler {
	return &QuestionHandler{answerer: answerer}
}

// AskQuestion answers a free-text question from the stored email corpus.
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	answer, err := h.answerer.Answer(c.Request.Context(), req.Question)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
