package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/history"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/uploads"
)

const uploadRateGroup = "UPLOAD"

// RouterDeps defines handler dependencies for routing.
type RouterDeps struct {
	Config         config.Config
	UploadHandler  *uploads.Handler
	HistoryHandler *history.Handler
	Limiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Routes are served at the root and mirrored under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: uploadRateGroup,
		Limiter:      deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			uploadRateGroup: middleware.PerMinute(deps.Config.UploadRatePerMin),
		},
	})

	health := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/metrics", metrics.Handler())

	for _, rg := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api/v1")} {
		rg.GET("/health", health)
		if deps.UploadHandler != nil {
			deps.UploadHandler.RegisterRoutes(rg, rateLimit)
		}
		if deps.HistoryHandler != nil {
			deps.HistoryHandler.RegisterRoutes(rg)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
