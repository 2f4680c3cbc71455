package dberr

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/code2244/bloglist/internal/errs"
	"github.com/code2244/bloglist/internal/repository"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError(t *testing.T) {
	duplicate := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: bloglist.blogs index: url_1 dup key: { url: "http://a.example" }`,
		}},
	}

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "malformed id",
			err:     repository.ErrInvalidID,
			status:  http.StatusBadRequest,
			code:    "BLOG_INVALID_ID",
			message: "malformatted id",
		},
		{
			name:    "wrapped not found",
			err:     pkgerrors.Wrap(repository.ErrNotFound, "update blog"),
			status:  http.StatusNotFound,
			code:    "BLOG_NOT_FOUND",
			message: "Blog not found",
		},
		{
			name:    "no documents",
			err:     mongo.ErrNoDocuments,
			status:  http.StatusNotFound,
			code:    "BLOG_NOT_FOUND",
			message: "Blog not found",
		},
		{
			name:    "duplicate key",
			err:     pkgerrors.Wrap(duplicate, "insert blog"),
			status:  http.StatusBadRequest,
			code:    "BLOG_ALREADY_EXISTS",
			message: "A blog with this Url already exists",
		},
		{
			name:    "document validation",
			err:     mongo.CommandError{Code: 121, Message: "Document failed validation"},
			status:  http.StatusBadRequest,
			code:    "RECORD_INVALID",
			message: "The record does not meet required conditions",
		},
		{
			name:    "timeout",
			err:     pkgerrors.Wrap(context.DeadlineExceeded, "find blogs"),
			status:  http.StatusServiceUnavailable,
			code:    "SERVICE_UNAVAILABLE",
			message: "The database is currently unavailable",
		},
		{
			name:    "network",
			err:     mongo.CommandError{Message: "connection reset", Labels: []string{"NetworkError"}},
			status:  http.StatusServiceUnavailable,
			code:    "SERVICE_UNAVAILABLE",
			message: "The database is currently unavailable",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := requireHTTPError(t, HandleError(tt.err))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleError_DuplicateKeyFieldErrors(t *testing.T) {
	err := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: bloglist.blogs index: url_1 dup key: { url: "x" }`,
		}},
	}

	httpErr := requireHTTPError(t, HandleError(err))
	assert.Equal(t, []errs.FieldError{{Field: "url", Error: "already exists"}}, httpErr.Errors)
	assert.True(t, httpErr.Override)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Blog not found", false, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_Nil(t *testing.T) {
	assert.NoError(t, HandleError(nil))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, InvalidID, ErrCode(Classify(repository.ErrInvalidID)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, Other, ErrCode(Classify(errors.New("plain"))))

	classified := Classify(mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error collection: db.blogs index: title_1"})
	assert.Equal(t, DuplicateKey, classified.Code)
	assert.Equal(t, 11000, classified.DatabaseCode)
	assert.Equal(t, "blogs", classified.Collection)
	assert.Equal(t, "title", classified.Field)

	wrapped := pkgerrors.Wrap(classified, "context")
	assert.Same(t, classified, Classify(wrapped))
}

func TestFieldFromIndex(t *testing.T) {
	assert.Equal(t, "url", fieldFromIndex("url_1"))
	assert.Equal(t, "first_name", fieldFromIndex("first_name_-1"))
	assert.Equal(t, "id", fieldFromIndex("_id_"))
	assert.Equal(t, "custom", fieldFromIndex("custom"))
}
