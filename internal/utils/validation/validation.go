// Package validation registers the domain validators with gin's binding engine
// and turns validator failures into field messages.
package validation

import (
	"errors"
	"regexp"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var accountCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9./-]*$`)

// Register adds the custom tags to gin's default validator. It is safe to call
// more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return RegisterOn(v)
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("accounttype", validAccountType); err != nil {
		return err
	}
	return v.RegisterValidation("accountcode", validAccountCode)
}

func validAccountType(fl validator.FieldLevel) bool {
	_, ok := domain.ParseAccountType(fl.Field().String())
	return ok
}

func validAccountCode(fl validator.FieldLevel) bool {
	return accountCodePattern.MatchString(fl.Field().String())
}

// FieldErrors maps each failing field to the tag it failed. Errors that are
// not validation errors give nil.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	out := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		out[ve.Field()] = ve.Tag()
	}
	return out
}
