package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/manemajef/clients-app/internal/config"
	"github.com/manemajef/clients-app/internal/http/handler"
	httpmiddleware "github.com/manemajef/clients-app/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	meetingHandler *handler.MeetingHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *httpmiddleware.Auth,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	r.Use(httpmiddleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", authMiddleware.RequireUser, authHandler.Me)
	}

	clients := r.Group("/clients", authMiddleware.RequireUser)
	{
		clients.POST("", clientHandler.Create)
		clients.GET("", clientHandler.List)
		clients.GET("/:id", clientHandler.Get)
	}

	meetings := r.Group("/meetings", authMiddleware.RequireUser)
	{
		meetings.POST("", meetingHandler.Create)
		meetings.GET("", meetingHandler.List)
		meetings.GET("/:id", meetingHandler.Get)
	}

	admin := r.Group("/admin", httpmiddleware.AdminSecret(cfg))
	{
		admin.GET("/users", adminHandler.ListUsers)
	}

	return r
}
