package injector

import (
	"gopkg.in/errgo.v1"
)

var (
	ErrMissingConfiguration = errgo.New("missing configuration")
	ErrInvalidConfiguration = errgo.New("invalid configuration")
	ErrSourceUnreadable     = errgo.New("source unreadable")
	ErrTokenNotFound        = errgo.New("token not found")
	ErrWriteFailure         = errgo.New("write failure")
)

var kinds = map[error]string{
	ErrMissingConfiguration: "MissingConfiguration",
	ErrInvalidConfiguration: "InvalidConfiguration",
	ErrSourceUnreadable:     "SourceUnreadable",
	ErrTokenNotFound:        "TokenNotFound",
	ErrWriteFailure:         "WriteFailure",
}

// Kind returns the name of the failure state err ended the build in, or ""
// if err does not carry one of the package causes.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	return kinds[errgo.Cause(err)]
}
