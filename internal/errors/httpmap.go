package errors

import (
	stderrors "errors"
	"net/http"
)

// Is re-exports errors.Is so delivery code matching sentinel errors
// needs only this package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// ErrorID maps a service error to the stable machine-readable code the
// web tier puts in redirect query strings and the API tier puts in the
// response envelope.
func ErrorID(err error) string {
	switch {
	case Is(err, ErrCaptchaIncomplete):
		return "captchaIncomplete"
	case Is(err, ErrEmailInvalid):
		return "emailInvalid"
	case Is(err, ErrEmailTaken):
		return "emailUnavailable"
	case Is(err, ErrUsernameInvalid):
		return "usernameInvalid"
	case Is(err, ErrUsernameTaken):
		return "usernameUnavailable"
	case Is(err, ErrPasswordInvalid):
		return "passwordInvalid"
	case Is(err, ErrRecordNotFound):
		return "recordNotFound"
	case Is(err, ErrUserNotFound):
		return "userNotFound"
	case Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internalError"
	}
}

// StatusCode maps a service error to its HTTP status. Conflicts are
// reported as 400, not 409, by existing convention.
func StatusCode(err error) int {
	switch {
	case Is(err, ErrCaptchaIncomplete),
		Is(err, ErrEmailInvalid),
		Is(err, ErrEmailTaken),
		Is(err, ErrUsernameInvalid),
		Is(err, ErrUsernameTaken),
		Is(err, ErrPasswordInvalid),
		Is(err, ErrRecordNotFound):
		return http.StatusBadRequest
	case Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
