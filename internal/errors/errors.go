package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email/username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when an admin username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRole is returned when registration carries a role outside Seeker/Donor.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidAidType is returned when the aid type is not a known category.
	ErrInvalidAidType = errors.New("invalid aid type")
	// ErrInvalidStatus is returned when a status string is not a known lifecycle state.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrRequestNotFound is returned when an aid request is not found.
	ErrRequestNotFound = errors.New("aid request not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned on a role or ownership mismatch.
	ErrForbidden = errors.New("operation not permitted")
	// ErrAdminUndeletable is returned when deletion targets an admin identity.
	ErrAdminUndeletable = errors.New("cannot delete an admin account")
	// ErrRequestConflict is returned when a conditional status update loses the race:
	// the request was read in an eligible state but changed before the write landed.
	ErrRequestConflict = errors.New("request was modified concurrently")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrAdminUndeletable):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_UNDELETABLE")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidAidType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AID_TYPE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrRequestConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
