package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StrictJSONSerializer is an echo.JSONSerializer that rejects request bodies
// carrying keys the target struct does not declare.
//
// Encoding is identical to echo's default serializer.
type StrictJSONSerializer struct{}

func (StrictJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (StrictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(i)
	if err == nil {
		// exactly one JSON value per body
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"malformatted JSON: unexpected data after the top-level value",
			)
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%s must be of type %s, got %s", field, jsonTypeName(typeErr.Type.String()), typeErr.Value),
		).SetInternal(err)

	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("malformatted JSON at offset %d", syntaxErr.Offset),
		).SetInternal(err)

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("unknown property %s", field),
		).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusBadRequest, "malformatted JSON").SetInternal(err)
}

// jsonTypeName maps a Go type to the JSON type a client should have sent.
func jsonTypeName(goType string) string {
	goType = strings.TrimPrefix(goType, "*")
	switch goType {
	case "string":
		return "string"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	case "bool":
		return "boolean"
	}
	if strings.HasPrefix(goType, "[]") {
		return "array"
	}
	return "object"
}
