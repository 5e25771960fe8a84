package storage

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrInvalidPath        = errors.New("invalid storage path")
	ErrMissingUpload      = errors.New("missing upload body")
	ErrFileNotFound       = errors.New("file not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrFailedToSaveFile   = errors.New("failed to save file")
	ErrFailedToOpenFile   = errors.New("failed to open file")
	ErrHealthcheckFailed  = errors.New("storage healthcheck failed")
)
