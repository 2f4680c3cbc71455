package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/code2244/bloglist/internal/errs"
	"github.com/code2244/bloglist/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultCollection names the entity when the driver message does not.
const defaultCollection = "blogs"

var (
	collectionPattern = regexp.MustCompile(`collection: [^.\s]+\.(\S+)`)
	indexPattern      = regexp.MustCompile(`index: (\S+)`)
)

// Classify converts err into an *Error, or returns nil when err is nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr
	}

	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return &Error{Code: InvalidID, Message: err.Error(), Collection: defaultCollection, driverErr: err}
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return &Error{Code: NotFound, Message: err.Error(), Collection: defaultCollection, driverErr: err}
	case mongo.IsTimeout(err):
		return &Error{Code: Timeout, Message: err.Error(), driverErr: err}
	case mongo.IsNetworkError(err):
		return &Error{Code: Network, Message: err.Error(), driverErr: err}
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		code := Other
		dbCode := 0
		for _, c := range []int{duplicateKeyCode, duplicateKeyLegacyCode, documentValidationCode} {
			if serverErr.HasErrorCode(c) {
				code = MapCode(c)
				dbCode = c
				break
			}
		}

		classified := &Error{
			Code:         code,
			DatabaseCode: dbCode,
			Message:      err.Error(),
			driverErr:    err,
		}
		if m := collectionPattern.FindStringSubmatch(classified.Message); len(m) > 1 {
			classified.Collection = m[1]
		}
		if code == DuplicateKey {
			if m := indexPattern.FindStringSubmatch(classified.Message); len(m) > 1 {
				classified.Field = fieldFromIndex(m[1])
			}
		}
		return classified
	}

	return &Error{Code: Other, Message: err.Error(), driverErr: err}
}

// generateErrorCode creates "application error codes" from store errors.
//
// Output format:
//
//	<ENTITY>_<ACTION>
//
// Example:
//
//	blogs + DuplicateKey => BLOG_ALREADY_EXISTS
func generateErrorCode(collection string, errType Code) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(collection)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case InvalidID:
		action = "INVALID_ID"
	case NotFound:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case DocumentValidation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client facing message for a
// classified error.
func formatUserFriendlyMessage(dbErr *Error) string {
	entityName := getEntityName(dbErr.Collection)

	switch dbErr.Code {
	case InvalidID:
		return "malformatted id"
	case NotFound:
		return fmt.Sprintf("%s not found", entityName)
	case DuplicateKey:
		field := humanizeText(dbErr.Field)
		if field == "" {
			field = "identifier"
		}
		return fmt.Sprintf("A %s with this %s already exists", strings.ToLower(entityName), field)
	case DocumentValidation:
		return fmt.Sprintf("The %s does not meet required conditions", strings.ToLower(entityName))
	case Timeout, Network:
		return "The database is currently unavailable"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName singularizes and title-cases a collection name:
// "blogs" -> "Blog". Empty input gives "Record".
func getEntityName(collection string) string {
	if collection == "" {
		return "Record"
	}
	entity := collection
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

// humanizeText converts snake_case identifiers into Title Case.
//
// Example:
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// fieldFromIndex derives the field name from a MongoDB index name.
//
// Single-field indexes are named "<field>_<direction>", e.g. "url_1".
func fieldFromIndex(index string) string {
	if index == "_id_" {
		return "id"
	}
	parts := strings.Split(index, "_")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if last == "1" || last == "-1" || last == "text" || last == "hashed" {
			return strings.Join(parts[:len(parts)-1], "_")
		}
	}
	return index
}

// HandleError converts a low-level store error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - InvalidID: 400 "malformatted id"
//   - NotFound: 404 "Blog not found"
//   - DuplicateKey / DocumentValidation: 400 with a generated code
//   - Timeout / Network: 503
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	dbErr := Classify(err)
	if dbErr == nil {
		return nil
	}

	errorCode := generateErrorCode(dbErr.Collection, dbErr.Code)
	userMessage := formatUserFriendlyMessage(dbErr)

	switch dbErr.Code {
	case InvalidID:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case NotFound:
		return errs.NewNotFoundError(userMessage, true, &errorCode)

	case DuplicateKey:
		var fieldErrors []errs.FieldError
		if dbErr.Field != "" {
			fieldErrors = []errs.FieldError{{Field: dbErr.Field, Error: "already exists"}}
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case DocumentValidation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case Timeout, Network:
		return errs.NewServiceUnavailableError(userMessage)

	default:
		return errs.NewInternalServerError()
	}
}
