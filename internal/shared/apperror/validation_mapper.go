package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError turns the first validator failure into a readable AppError,
// e.g. "End Date is invalid".
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field).WithDetails(err.Error())
		default:
			return InvalidField(field).WithDetails(err.Error())
		}
	}

	return New(
		CodeValidation,
		"Input is invalid",
		http.StatusBadRequest,
	).WithDetails(err.Error())
}
