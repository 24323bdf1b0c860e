package handler

import (
	"context"
	"net/http"

	"finbrief/internal/model"

	"github.com/gin-gonic/gin"
)

type BriefComposer interface {
	Compose(ctx context.Context, query string) model.BriefResult
}

type BriefHandler struct {
	composer BriefComposer
}

func NewBriefHandler(composer BriefComposer) *BriefHandler {
	return &BriefHandler{composer: composer}
}

// GenerateBrief always answers 200 with a best-effort payload; collaborator
// failures show up inside the body, never as HTTP errors.
func (h *BriefHandler) GenerateBrief(c *gin.Context) {
	var req BriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.composer.Compose(c.Request.Context(), req.UserQuery)
	c.JSON(http.StatusOK, toBriefResponse(result))
}

func (h *BriefHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
