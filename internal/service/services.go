package service

import (
	"time"

	"github.com/code2244/bloglist/internal/lib/cache"
	"github.com/code2244/bloglist/internal/lib/job"
	"github.com/code2244/bloglist/internal/repository"
	"github.com/code2244/bloglist/internal/server"
)

type Services struct {
	Blog *BlogService
	Job  *job.JobService
}

// NewService builds the services container. The stats cache and job queue
// are wired only when the server holds a Redis connection.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	blogService := NewBlogService(repos.Blogs, s.Logger)

	if s.Redis != nil {
		ttl := time.Duration(s.Config.Redis.StatsTTL) * time.Second
		blogService.WithStatsCache(cache.NewStatsCache(s.Redis, ttl))
	}
	if s.Job != nil {
		blogService.WithStatsJobs(s.Job)
	}

	return &Services{
		Blog: blogService,
		Job:  s.Job,
	}, nil
}
