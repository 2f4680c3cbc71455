// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/code2244/bloglist/internal/handler"
	"github.com/code2244/bloglist/internal/middleware"
	"github.com/code2244/bloglist/internal/server"
	"github.com/code2244/bloglist/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance serving the whole application.
//
// Middleware order matters: request ids come before tracing so the
// transaction can carry them, and the context enhancer must run before
// anything that logs through middleware.GetLogger.
func NewRouter(s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.JSONSerializer = validation.StrictJSONSerializer{}
	r.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	r.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(r, h)

	api := r.Group("/api")
	registerBlogRoutes(api, h)

	s.Logger.Debug().Int("routes", len(r.Routes())).Msg("router initialized")

	return r
}
