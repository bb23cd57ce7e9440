package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/ai"
)

func (h *Handler) Health(c *gin.Context) {
	anthropicUp := h.Registry.Configured(ai.ProviderAnthropic)
	openaiUp := h.Registry.Configured(ai.ProviderOpenAI)

	status := "ok"
	code := http.StatusOK
	if !anthropicUp && !openaiUp {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"models": gin.H{
			"anthropic": anthropicUp,
			"openai":    openaiUp,
		},
		"version": Version,
	})
}
