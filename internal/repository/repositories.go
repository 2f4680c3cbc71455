package repository

import (
	"github.com/code2244/bloglist/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Blogs BlogRepository
}

// NewRepositories constructs the repository container on top of the
// server's MongoDB connection.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Blogs: NewMongoBlogRepository(s.DB.Blogs()),
	}
}
