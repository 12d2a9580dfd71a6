package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/feed"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
)

// Router exposes the application views as HTTP routes
type Router struct {
	feed    *feed.Service
	actions *actions.Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(feedSvc *feed.Service, actionSvc *actions.Service, cfg *config.Config) *Router {
	return &Router{
		feed:    feedSvc,
		actions: actionSvc,
		cfg:     cfg,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Session
	engine.POST("/login", r.loginHandler)
	engine.POST("/logout", r.logoutHandler)
	engine.GET("/session", r.sessionHandler)

	// Feed and posts
	engine.GET("/feed", r.feedHandler)
	engine.GET("/posts/:author/:permlink", r.postHandler)
	engine.GET("/profile/:account", r.profileHandler)
	engine.POST("/posts", r.publishHandler)

	// Drafts
	engine.GET("/drafts", r.draftGetHandler)
	engine.POST("/drafts", r.draftSaveHandler)
	engine.DELETE("/drafts", r.draftDeleteHandler)

	// Wallet-backed actions
	engine.POST("/votes", r.voteHandler)
	engine.POST("/transfers", r.transferHandler)
	engine.POST("/tips", r.tipHandler)

	// Ads and guides
	engine.POST("/ads", r.adHandler)
	engine.GET("/ads/current", r.currentAdHandler)
	engine.GET("/guides", r.guidesHandler)
	engine.POST("/guides/:id/purchase", r.guidePurchaseHandler)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "travelo",
	})
}
