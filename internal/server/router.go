package server

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig holds dependencies for the API router.
type RouterConfig struct {
	Tokens    TokenService
	Documents DocumentFetcher
	Users     UserCounter
}

// NewRouter creates and configures the gin engine.
func NewRouter(config RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery())
	router.Use(Logging())
	router.Use(CORS())

	h := NewHandlers(config.Tokens, config.Documents, config.Users)

	router.GET("/health", h.Health)
	router.POST("/auth/google", h.Authenticate)
	router.GET("/google-doc", h.GetDocument)

	return router
}
