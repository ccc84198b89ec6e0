// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tripchat/internal/http/handlers"
	"tripchat/internal/http/middleware"
)

type RouterDeps struct {
	Assistant   handlers.Assistant
	Inbox       handlers.Inbox // nil disables the agent routes
	ChatTimeout time.Duration
	Log         *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	chatHandler := handlers.NewChatHandler(deps.Assistant, deps.ChatTimeout)
	r.GET("/chat", chatHandler.Chat)

	if deps.Inbox != nil {
		agentHandler := handlers.NewAgentHandler(deps.Inbox)
		r.GET("/agent/inbox", agentHandler.List)
		r.POST("/agent/inbox/:id/claim", agentHandler.Claim)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
