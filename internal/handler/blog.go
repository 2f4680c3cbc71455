package handler

import (
	"github.com/code2244/bloglist/internal/lib/stats"
	"github.com/code2244/bloglist/internal/model"
	"github.com/code2244/bloglist/internal/server"
	"github.com/code2244/bloglist/internal/service"
	"github.com/labstack/echo/v4"
)

// BlogHandler serves the /api/blogs resource.
type BlogHandler struct {
	Handler
	blogService *service.BlogService
}

func NewBlogHandler(s *server.Server, blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		Handler:     NewHandler(s),
		blogService: blogService,
	}
}

// ListBlogs returns every stored blog.
func (h *BlogHandler) ListBlogs(c echo.Context, _ *model.ListBlogsRequest) ([]model.Blog, error) {
	return h.blogService.List(c.Request().Context())
}

// CreateBlog stores a new blog. Absent likes default to 0.
func (h *BlogHandler) CreateBlog(c echo.Context, req *model.BlogRequest) (*model.Blog, error) {
	return h.blogService.Create(c.Request().Context(), req.Fields())
}

// UpdateBlog replaces title, author, url and likes of an existing blog.
func (h *BlogHandler) UpdateBlog(c echo.Context, req *model.UpdateBlogRequest) (*model.Blog, error) {
	return h.blogService.Update(c.Request().Context(), req.BlogID, req.Fields())
}

// DeleteBlog removes a blog; deleting a missing blog succeeds as well.
func (h *BlogHandler) DeleteBlog(c echo.Context, req *model.DeleteBlogRequest) error {
	return h.blogService.Delete(c.Request().Context(), req.BlogID)
}

// GetStats returns the aggregate figures over all blogs.
func (h *BlogHandler) GetStats(c echo.Context, _ *model.ListBlogsRequest) (*stats.Summary, error) {
	return h.blogService.Stats(c.Request().Context())
}
