package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a config value that failed its constraint.
type ValidationError struct {
	Source  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Source, e.Field, e.Message)
}

var ownerRepoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("owner_repo", func(fl validator.FieldLevel) bool {
		return ownerRepoPattern.MatchString(fl.Field().String())
	})
	return v
}()

// ValidateConfigValues checks the merged configuration. The first failing
// field is reported by its config key.
func ValidateConfigValues(cfg *Configuration, source string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Source: source, Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{Source: source, Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must not be negative"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "owner_repo":
		return `must look like "owner/repo"`
	default:
		return "failed " + fe.Tag() + " check"
	}
}
