// Package repository handles all interactions with the document store.
//
// It owns the stored document shapes and projects them to the wire
// model, so no layer above it ever sees an ObjectID or version field.
package repository

import (
	"context"

	"github.com/code2244/bloglist/internal/model"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no blog matches a well formed id.
	ErrNotFound = errors.New("blog not found")

	// ErrInvalidID is returned when an id cannot be parsed by the store.
	ErrInvalidID = errors.New("malformatted id")
)

// BlogRepository is the persistence port for blogs.
//
// DeleteByID and ReplaceByID return ErrNotFound when the id does not
// exist; callers that treat delete as idempotent swallow it.
// ReplaceByID overwrites every mutable field.
type BlogRepository interface {
	FindAll(ctx context.Context) ([]model.Blog, error)
	Insert(ctx context.Context, fields model.BlogFields) (*model.Blog, error)
	DeleteByID(ctx context.Context, id string) error
	ReplaceByID(ctx context.Context, id string, fields model.BlogFields) (*model.Blog, error)
}
