package handlers

import (
	"github.com/raylincc/codechat/internal/ai"
	"github.com/raylincc/codechat/internal/chat"
	"github.com/raylincc/codechat/internal/config"
)

// Version is stamped into /health responses.
var Version = "0.1.0"

type Handler struct {
	Store    chat.Store
	Registry *ai.Registry
	Cfg      config.Config
}

func NewHandler(store chat.Store, registry *ai.Registry, cfg config.Config) *Handler {
	return &Handler{Store: store, Registry: registry, Cfg: cfg}
}
