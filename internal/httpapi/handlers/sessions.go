package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/chat"
	"github.com/raylincc/codechat/internal/common"
)

func (h *Handler) ListChats(c *gin.Context) {
	summaries, err := h.Store.List(c.Request.Context())
	if err != nil {
		slog.Error("list sessions failed", "error", err)
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "failed to list chats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": summaries})
}

func (h *Handler) CreateChat(c *gin.Context) {
	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON")
		return
	}

	in, err := chat.ValidateCreate(raw)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeValidationError, err.Error())
		return
	}

	sess, err := h.Store.Create(c.Request.Context(), *in)
	if err != nil {
		slog.Error("create session failed", "error", err)
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "failed to create chat")
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *Handler) GetChat(c *gin.Context) {
	sess, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, common.CodeNotFound, "chat not found")
			return
		}
		slog.Error("get session failed", "error", err)
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "failed to get chat")
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handler) UpdateChat(c *gin.Context) {
	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON")
		return
	}

	patch, err := chat.ValidateUpdate(raw)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeValidationError, err.Error())
		return
	}

	sess, err := h.Store.Update(c.Request.Context(), c.Param("id"), *patch)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, common.CodeNotFound, "chat not found")
			return
		}
		slog.Error("update session failed", "error", err)
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "failed to update chat")
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handler) DeleteChat(c *gin.Context) {
	existed, err := h.Store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("delete session failed", "error", err)
		common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "failed to delete chat")
		return
	}
	if !existed {
		common.Fail(c, http.StatusNotFound, common.CodeNotFound, "chat not found")
		return
	}
	c.Status(http.StatusNoContent)
}
