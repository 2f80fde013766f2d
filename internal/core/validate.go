package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// GenerationError is returned when the recommendation service fails, returns
// nothing, or returns content that does not match the bundle schema.
type GenerationError struct {
	Adapter string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Adapter == "" {
		return fmt.Sprintf("generation failed: %v", e.Cause)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Adapter, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func bundleValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// Report JSON names so errors line up with the model's output
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the bundle against the shape requested from the model:
// exactly 4 books, 2-3 media items, at least one genre each, and no blank
// text field.
func (r *DiscoveryResults) Validate() error {
	if err := bundleValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}
		fe := fieldErrs[0]
		return &ValidationError{Field: fieldPath(fe), Message: friendlyMessage(fe)}
	}
	return nil
}

// fieldPath trims the struct name prefix: "DiscoveryResults.books[0].title" -> "books[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "len":
		return fmt.Sprintf("must contain exactly %s entries", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
