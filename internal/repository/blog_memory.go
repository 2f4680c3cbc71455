package repository

import (
	"context"
	"sync"

	"github.com/code2244/bloglist/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBlogRepository keeps blogs in insertion order in process memory.
//
// Ids are ObjectID hex strings so malformed ids behave the same way they do
// against MongoDB.
type MemoryBlogRepository struct {
	mu    sync.RWMutex
	blogs []model.Blog
}

func NewMemoryBlogRepository(seed ...model.Blog) *MemoryBlogRepository {
	r := &MemoryBlogRepository{}
	for _, b := range seed {
		if b.ID == "" {
			b.ID = primitive.NewObjectID().Hex()
		}
		r.blogs = append(r.blogs, b)
	}
	return r
}

func (r *MemoryBlogRepository) FindAll(_ context.Context) ([]model.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blogs := make([]model.Blog, len(r.blogs))
	copy(blogs, r.blogs)
	return blogs, nil
}

func (r *MemoryBlogRepository) Insert(_ context.Context, fields model.BlogFields) (*model.Blog, error) {
	blog := fromFields(primitive.NewObjectID().Hex(), fields)

	r.mu.Lock()
	r.blogs = append(r.blogs, blog)
	r.mu.Unlock()

	return &blog, nil
}

func (r *MemoryBlogRepository) DeleteByID(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.blogs {
		if b.ID == id {
			r.blogs = append(r.blogs[:i], r.blogs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryBlogRepository) ReplaceByID(_ context.Context, id string, fields model.BlogFields) (*model.Blog, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.blogs {
		if b.ID == id {
			r.blogs[i] = fromFields(id, fields)
			blog := r.blogs[i]
			return &blog, nil
		}
	}
	return nil, ErrNotFound
}

func fromFields(id string, fields model.BlogFields) model.Blog {
	return model.Blog{
		ID:     id,
		Title:  fields.Title,
		Author: fields.Author,
		URL:    fields.URL,
		Likes:  fields.Likes,
	}
}
