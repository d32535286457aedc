package validation

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// IsRequestValid reports whether req passes its `validate` tags, with a
// readable message when it does not.
func IsRequestValid(req any) (bool, string) {
	err := instance().Struct(req)
	if err == nil {
		return true, ""
	}
	return false, describe(err)
}

// Validate returns a validation AppError when req fails its tags.
func Validate(req any) error {
	if ok, msg := IsRequestValid(req); !ok {
		return apperr.New(apperr.CodeValidation, msg, http.StatusBadRequest, nil)
	}
	return nil
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
