package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/ai"
	"github.com/raylincc/codechat/internal/chat"
	"github.com/raylincc/codechat/internal/common"
)

// Generate handles POST /chat: validate, resolve the model, build the
// system prompt, then either stream SSE or return a single JSON body.
func (h *Handler) Generate(c *gin.Context) {
	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON")
		return
	}

	req, err := chat.ValidateGenerate(raw)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeValidationError, err.Error())
		return
	}

	spec, ok := ai.Resolve(req.Model)
	if !ok {
		supported := "supported models: " + strings.Join(ai.SupportedModels(), ", ")
		common.FailDetails(c, http.StatusBadRequest, common.CodeModelNotAvailable, "model not available", supported)
		return
	}
	provider, ok := h.Registry.Get(spec.Provider)
	if !ok {
		common.Fail(c, http.StatusBadRequest, common.CodeModelNotAvailable, "model not available")
		return
	}

	aiReq := ai.ChatRequest{
		Model:     spec.UpstreamID,
		System:    chat.BuildSystemPrompt(req.CodeContext),
		MaxTokens: h.Cfg.MaxOutputTokens,
		Messages:  toProviderMessages(req.Messages),
	}

	if req.Stream {
		h.generateStream(c, provider, aiReq)
		return
	}
	h.generateJSON(c, provider, req.Model, aiReq)
}

func toProviderMessages(msgs []chat.Message) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (h *Handler) generateJSON(c *gin.Context, provider ai.Provider, logicalModel string, req ai.ChatRequest) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	res, err := provider.Chat(ctx, req)
	if err != nil {
		status, code := common.ClassifyProviderError(err)
		slog.Error("provider call failed", "provider", provider.Name(), "error", err)
		common.FailDetails(c, status, code, "upstream provider error", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content":      res.Content,
		"model":        logicalModel,
		"finishReason": res.FinishReason,
	})
}

func (h *Handler) generateStream(c *gin.Context, provider ai.Provider, req ai.ChatRequest) {
	sp, ok := provider.(ai.StreamProvider)
	if !ok {
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "provider does not support streaming")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "streaming not supported")
		return
	}

	// SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // helpful if behind nginx
	c.Status(http.StatusOK)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	chunks, errs := sp.StreamChat(ctx, req)
	relaySSE(ctx, c.Writer, flusher, chunks, errs)
}
