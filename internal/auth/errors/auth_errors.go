package autherrors

import (
	"net/http"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
)

var (
	ErrNoSession = apperror.New(
		apperror.CodeUnauthorized,
		"Not signed in",
		http.StatusUnauthorized,
	)
	ErrInvalidSession = apperror.New(
		apperror.CodeUnauthorized,
		"Session is invalid or expired",
		http.StatusUnauthorized,
	)
	ErrProviderUnavailable = apperror.New(
		apperror.CodeUpstreamError,
		"Authentication provider is unavailable",
		http.StatusBadGateway,
	)
)

// Provider turns an error answer of the auth provider into an AppError that
// keeps the provider's message, e.g. "Invalid login credentials".
func Provider(status int, message string) *apperror.AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperror.New(apperror.CodeUnauthorized, message, http.StatusUnauthorized)
	case status == http.StatusTooManyRequests:
		return apperror.New(apperror.CodeRateLimited, message, http.StatusTooManyRequests)
	case status >= 400 && status < 500:
		return apperror.New(apperror.CodeInvalidInput, message, http.StatusBadRequest)
	default:
		return apperror.New(apperror.CodeUpstreamError, message, http.StatusBadGateway)
	}
}
