package storage

import (
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ExistenceState is the outcome of an object probe.
type ExistenceState int

const (
	Absent ExistenceState = iota
	Exists
	CheckFailed
)

func (s ExistenceState) String() string {
	switch s {
	case Exists:
		return "exists"
	case Absent:
		return "absent"
	case CheckFailed:
		return "check_failed"
	default:
		return "unknown"
	}
}

// Existence tells apart a missing object from a probe that could not run.
type Existence struct {
	State ExistenceState
	// Err is set for CheckFailed and Absent; it is the probe error.
	Err error
}

func classifyStatError(err error) Existence {
	if err == nil {
		return Existence{State: Exists}
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch {
		case resp.Code == "NoSuchKey", resp.Code == "NoSuchBucket", resp.StatusCode == http.StatusNotFound:
			return Existence{State: Absent, Err: err}
		}
	}
	return Existence{State: CheckFailed, Err: err}
}
