package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ErrUpload matches every *UploadError through errors.Is.
var ErrUpload = errors.New("file upload failed")

// UploadError is the only error kind returned by Uploader operations.
// Message is set when the object store itself rejected the request;
// otherwise the cause is wrapped as is.
type UploadError struct {
	Op      string
	Key     string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrUpload.Error()
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func (e *UploadError) Is(target error) bool {
	return target == ErrUpload
}

// newUploadError maps a client failure into an UploadError. Object store
// responses get the descriptive message, anything else is wrapped opaquely.
func newUploadError(op, key, message string, err error) *UploadError {
	if isStorageError(err) {
		return &UploadError{Op: op, Key: key, Message: message, Err: err}
	}
	return &UploadError{Op: op, Key: key, Err: errors.WithStack(err)}
}

func isStorageError(err error) bool {
	var resp minio.ErrorResponse
	return errors.As(err, &resp)
}
