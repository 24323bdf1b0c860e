package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"finbrief/internal/model"

	"github.com/gin-gonic/gin"
)

type VoicePipeline interface {
	Run(ctx context.Context, filename string, audio []byte) model.VoiceBriefResult
}

type VoiceHandler struct {
	pipeline VoicePipeline
}

func NewVoiceHandler(pipeline VoicePipeline) *VoiceHandler {
	return &VoiceHandler{pipeline: pipeline}
}

// GenerateVoiceBrief accepts a multipart upload under the "audio" field and
// answers 200 with the pipeline result no matter how many stages degraded.
// Synthesized audio comes back base64-encoded in the JSON body.
func (h *VoiceHandler) GenerateVoiceBrief(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		slog.Error("error reading uploaded audio", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read audio file"})
		return
	}

	result := h.pipeline.Run(c.Request.Context(), header.Filename, audio)
	c.JSON(http.StatusOK, toVoiceBriefResponse(result))
}
