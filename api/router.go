package api

import (
	"net/http"

	"backoffice/api/middleware"
	"backoffice/config"

	"github.com/gin-gonic/gin"
)

// ControllerRegister is implemented by every resource controller.
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister adds middleware after the built-in chain.
type MiddlewareRegister interface {
	Handler() gin.HandlerFunc
}

// Route is a single handler mounted on the engine root.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers []ControllerRegister
	routes      []Route
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	controllers []ControllerRegister,
	middlewares []MiddlewareRegister,
	routes []Route,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Order matters: the request id must exist before anything logs.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	for _, m := range middlewares {
		engine.Use(m.Handler())
	}

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
		routes:      routes,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	for _, route := range r.routes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
