package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/code2244/bloglist/internal/config"
	"github.com/code2244/bloglist/internal/errs"
	"github.com/code2244/bloglist/internal/server"
	"github.com/code2244/bloglist/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name *string `json:"name"`
	Tag  string  `json:"tag"`
}

func (r *echoRequest) Validate() error {
	if r.Name == nil {
		return validation.CustomValidationErrors{{Field: "name", Message: "is required"}}
	}
	return nil
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: config.EnvTest},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandle_BindsFreshRequestEachCall(t *testing.T) {
	h := NewHandler(newTestServer(t))

	var seen []echoRequest
	e := echo.New()
	e.POST("/echo", Handle(h, func(c echo.Context, req *echoRequest) (*echoRequest, error) {
		seen = append(seen, *req)
		return req, nil
	}, http.StatusCreated, &echoRequest{}))

	rec := serve(e, http.MethodPost, "/echo", `{"name":"first","tag":"x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"first","tag":"x"}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/echo", `{"name":"second"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"second","tag":""}`, rec.Body.String())

	require.Len(t, seen, 2)
	assert.Empty(t, seen[1].Tag)
}

func TestHandle_ValidationFailureSkipsHandler(t *testing.T) {
	h := NewHandler(newTestServer(t))

	called := false
	endpoint := Handle(h, func(c echo.Context, req *echoRequest) (*echoRequest, error) {
		called = true
		return req, nil
	}, http.StatusOK, &echoRequest{})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"tag":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := endpoint(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "name is required", httpErr.Message)
	assert.False(t, called)
}

func TestHandleNoContent(t *testing.T) {
	h := NewHandler(newTestServer(t))

	e := echo.New()
	e.POST("/echo", HandleNoContent(h, func(c echo.Context, req *echoRequest) error {
		return nil
	}, http.StatusNoContent, &echoRequest{}))

	rec := serve(e, http.MethodPost, "/echo", `{"name":"n"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandle_PropagatesHandlerError(t *testing.T) {
	h := NewHandler(newTestServer(t))

	e := echo.New()
	e.POST("/echo", Handle(h, func(c echo.Context, req *echoRequest) (*echoRequest, error) {
		return nil, echo.NewHTTPError(http.StatusTeapot, "nope")
	}, http.StatusOK, &echoRequest{}))

	rec := serve(e, http.MethodPost, "/echo", `{"name":"n"}`)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
