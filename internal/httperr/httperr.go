package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

var catalog = map[string]struct {
	status  int
	message string
}{
	CodeInvalidRequest:       {http.StatusBadRequest, "Invalid request."},
	CodeInvalidCredentials:   {http.StatusUnauthorized, "Invalid email or password"},
	CodeUserAlreadyExists:    {http.StatusConflict, "User already exists"},
	CodeUserNotFound:         {http.StatusNotFound, "User not found"},
	CodeUserInactive:         {http.StatusForbidden, "User account is disabled"},
	CodeInvalidEmailDomain:   {http.StatusBadRequest, "The email domain does not look valid."},
	CodeForbidden:            {http.StatusForbidden, "Forbidden: admin role required"},
	CodeShiftNotFound:        {http.StatusNotFound, "Shift not found"},
	CodeShiftTimeConflict:    {http.StatusConflict, "Shift overlaps with an existing shift"},
	CodeShiftApproved:        {http.StatusBadRequest, "Approved shifts cannot be updated"},
	CodeInvalidTimeRange:     {http.StatusBadRequest, "End time must be later than start time."},
	CodeNotificationNotFound: {http.StatusNotFound, "Notification not found"},
	CodeFileMustBeVideo:      {http.StatusBadRequest, "File must be a video"},
	CodeFileMustBeImage:      {http.StatusBadRequest, "File must be an image"},
	CodeInvalidConfidence:    {http.StatusBadRequest, "Confidence must be between 0 and 1"},
	CodeInferenceUnavailable: {http.StatusBadGateway, "Detection model is unavailable"},
	CodeDetectionFailed:      {http.StatusInternalServerError, "Detection failed"},
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Abort writes an error payload and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Respond maps err to a status and payload. Business codes use the
// catalog, Postgres constraint violations are translated, anything
// else is an internal error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		if entry, ok := catalog[be.Code]; ok {
			Write(c, entry.status, be.Code, entry.message)
			return
		}
		BadRequest(c, be.Code, be.Code)
	case IsUniqueViolation(err):
		entry := catalog[CodeUserAlreadyExists]
		Write(c, entry.status, CodeUserAlreadyExists, entry.message)
	case IsExclusionConflict(err):
		entry := catalog[CodeShiftTimeConflict]
		Write(c, entry.status, CodeShiftTimeConflict, entry.message)
	default:
		_ = c.Error(err)
		Internal(c, "internal_error", "Internal server error")
	}
}
