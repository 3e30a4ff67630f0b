package analyses

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingField   = errors.New("required field missing")
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrStorage        = errors.New("storage error")
	ErrQueueDisabled  = errors.New("queue not configured")
)

const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeInvalidOptions    = "invalid_options"
	ErrorCodeUnsupportedFormat = "unsupported_format"
	ErrorCodeUnreadableFile    = "unreadable_file"
	ErrorCodeFileTooLarge      = "file_too_large"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeAnalysisFailed    = "analysis_failed"
	ErrorCodeStorage           = "storage_error"
	ErrorCodeQueueUnavailable  = "queue_unavailable"
	ErrorCodeInternal          = "internal_error"
)

// FieldError reports a required input that was empty. It matches ErrMissingField.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return ErrMissingField.Error() + ": " + e.Field
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
