package router

import (
	"net/http"

	"github.com/code2244/bloglist/internal/handler"
	"github.com/code2244/bloglist/internal/model"
	"github.com/labstack/echo/v4"
)

func registerBlogRoutes(api *echo.Group, h *handler.Handlers) {
	blogs := api.Group("/blogs")

	blogs.GET("", handler.Handle(h.Blog.Handler, h.Blog.ListBlogs, http.StatusOK, &model.ListBlogsRequest{}))
	blogs.POST("", handler.Handle(h.Blog.Handler, h.Blog.CreateBlog, http.StatusCreated, &model.BlogRequest{}))
	blogs.GET("/stats", handler.Handle(h.Blog.Handler, h.Blog.GetStats, http.StatusOK, &model.ListBlogsRequest{}))
	blogs.PUT("/:id", handler.Handle(h.Blog.Handler, h.Blog.UpdateBlog, http.StatusOK, &model.UpdateBlogRequest{}))
	blogs.DELETE("/:id", handler.HandleNoContent(h.Blog.Handler, h.Blog.DeleteBlog, http.StatusNoContent, &model.DeleteBlogRequest{}))
}
