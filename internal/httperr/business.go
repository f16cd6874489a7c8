package httperr

import "errors"

const (
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeUserAlreadyExists    = "user_already_exists"
	CodeUserNotFound         = "user_not_found"
	CodeUserInactive         = "user_inactive"
	CodeInvalidEmailDomain   = "invalid_email_domain"
	CodeForbidden            = "forbidden"
	CodeShiftNotFound        = "shift_not_found"
	CodeShiftTimeConflict    = "shift_time_conflict"
	CodeShiftApproved        = "shift_already_approved"
	CodeInvalidTimeRange     = "invalid_time_range"
	CodeNotificationNotFound = "notification_not_found"
	CodeFileMustBeVideo      = "file_must_be_video"
	CodeFileMustBeImage      = "file_must_be_image"
	CodeInvalidConfidence    = "invalid_confidence"
	CodeInferenceUnavailable = "inference_unavailable"
	CodeDetectionFailed      = "detection_failed"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
