// Package model holds the blog domain types and the typed request payloads
// the HTTP layer binds into.
package model

import (
	"github.com/go-playground/validator/v10"
)

// Blog is the wire representation of a stored blog post.
//
// The store's internal identifier is projected to ID at the repository
// boundary; version metadata never reaches this type.
type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// BlogFields are the mutable fields of a blog. Insert and full replacement
// both take this shape.
type BlogFields struct {
	Title  string
	Author string
	URL    string
	Likes  int
}

// BlogRequest is the JSON payload accepted by create and update.
//
// Optional fields are pointers so an absent key can be told apart from a
// zero value. ID is accepted so clients can send back an object they got
// from the API, but it is never used.
type BlogRequest struct {
	ID     *string `json:"id,omitempty"`
	Title  *string `json:"title" validate:"required,min=1"`
	Author *string `json:"author"`
	URL    *string `json:"url" validate:"required,min=1"`
	Likes  *int    `json:"likes" validate:"omitempty,min=0"`
}

func (r *BlogRequest) Validate() error {
	return validator.New().Struct(r)
}

// Fields applies defaulting: an absent likes key is stored as 0.
func (r *BlogRequest) Fields() BlogFields {
	f := BlogFields{
		Title: *r.Title,
		URL:   *r.URL,
	}
	if r.Author != nil {
		f.Author = *r.Author
	}
	if r.Likes != nil {
		f.Likes = *r.Likes
	}
	return f
}

// UpdateBlogRequest is bound from PUT /api/blogs/:id.
type UpdateBlogRequest struct {
	BlogID string `param:"id" json:"-" validate:"required"`
	BlogRequest
}

func (r *UpdateBlogRequest) Validate() error {
	return validator.New().Struct(r)
}

// DeleteBlogRequest is bound from DELETE /api/blogs/:id.
type DeleteBlogRequest struct {
	BlogID string `param:"id" json:"-" validate:"required"`
}

func (r *DeleteBlogRequest) Validate() error {
	return validator.New().Struct(r)
}

// ListBlogsRequest carries no input; GET /api/blogs returns everything.
type ListBlogsRequest struct{}

func (r *ListBlogsRequest) Validate() error {
	return nil
}
