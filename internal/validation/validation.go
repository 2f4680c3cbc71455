// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules (like required
// fields or minimum values) defined in struct tags, decodes JSON
// bodies strictly, and converts failures into errs.HTTPError values
// the client can understand.
package validation
