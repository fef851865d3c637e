package employeeerrors

import (
	"net/http"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)

// Query wraps a failed read of the employee table. The driver message is kept
// as the response message, matching what the dashboard shows on a failed load.
func Query(err error) *apperror.AppError {
	return apperror.Wrap(err, apperror.CodeUpstreamError, err.Error(), http.StatusInternalServerError)
}
