package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/ai"
	"github.com/raylincc/codechat/internal/chat"
	"github.com/raylincc/codechat/internal/common"
	"github.com/raylincc/codechat/internal/config"
	"github.com/raylincc/codechat/internal/httpapi/handlers"
	"github.com/raylincc/codechat/internal/httpapi/middleware"
	"github.com/raylincc/codechat/internal/ratelimit"
)

func NewRouter(store chat.Store, registry *ai.Registry, limiter ratelimit.Limiter, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, common.CodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, common.CodeBadRequest, "method not allowed")
	})

	h := handlers.NewHandler(store, registry, cfg)

	r.GET("/health", h.Health)

	// session CRUD
	r.GET("/chats", h.ListChats)
	r.POST("/chats", h.CreateChat)
	r.GET("/chats/:id", h.GetChat)
	r.PATCH("/chats/:id", h.UpdateChat)
	r.DELETE("/chats/:id", h.DeleteChat)

	// generation; only this endpoint consumes upstream quota
	r.POST("/chat", middleware.RateLimit(limiter, cfg.RateLimitRequests), h.Generate)

	return r
}
