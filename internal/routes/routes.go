package routes

import (
	"hirelink_backend/internal/handlers"
	"hirelink_backend/internal/logger"
	"hirelink_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP and WebSocket routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.InterviewHandler.RegisterRoutes(api)
		appHandlers.FeedbackHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	// No auth middleware here: the handshake itself decides between an
	// authenticated and an anonymous client.
	ginRouter.GET("/ws", wsHandler.ServeWS)

	logger.Info("WebSocket route /ws registered")
}
