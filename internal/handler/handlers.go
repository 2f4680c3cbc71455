// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package,
// calls the service layer and shapes the response. Errors are
// returned to the global error handler, which writes them.
package handler

import (
	"github.com/code2244/bloglist/internal/server"
	"github.com/code2244/bloglist/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Blog    *BlogHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Blog:    NewBlogHandler(s, services.Blog),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
