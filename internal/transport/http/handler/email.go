package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"email-rag/internal/models"
	"email-rag/internal/rag"
	"email-rag/internal/transport/http/response"
)

type EmailHandler struct {
	ingestor *rag.Ingestor
}

func NewEmailHandler(ingestor *rag.Ingestor) *EmailHandler {
	return &EmailHandler{ingestor: ingestor}
}

// StoreEmail ingests one email posted as JSON.
func (h *EmailHandler) StoreEmail(c *gin.Context) {
	var email models.Email
	if err := c.ShouldBindJSON(&email); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	emailID, err := h.ingestor.Ingest(c.Request.Context(), &email)
	if err != nil {
		var verr *rag.ValidationError
		if errors.As(err, &verr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid email data", verr.Violations)
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "Email stored successfully!", gin.H{"email_id": emailID})
}
