package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	googleauth "resume-optimizer/internal/auth"
	"resume-optimizer/internal/export"
	"resume-optimizer/internal/intake"
	"resume-optimizer/internal/results"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config   config.Config
	Analyses *analyses.Handler
	Results  *results.Handler
	Export   *export.Handler
	Intake   *intake.Handler
	Users    *users.Handler
	Auth     *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	limiter := middleware.NewRateLimiter(time.Now)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 2, Burst: 10}))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(api)
	}
	if deps.Users != nil {
		deps.Users.RegisterRoutes(api)
	}
	if deps.Analyses != nil {
		deps.Analyses.RegisterRoutes(api)
	}
	if deps.Results != nil {
		deps.Results.RegisterRoutes(api)
	}
	if deps.Export != nil {
		deps.Export.RegisterRoutes(api)
	}
	if deps.Intake != nil {
		deps.Intake.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
