package main

import (
	"fmt"

	"github.com/browsey/browsey/pkg/apierror"
)

// usageError is returned for malformed flag values caught before a command
// reaches the engine (an unrecognized --mode, an unparsable --policy). It
// implements apierror.CodedError directly so Flatten reports it as
// invalid_input rather than falling back to CodeUnknown.
type usageError struct {
	message string
}

func (e *usageError) Error() string     { return e.message }
func (e *usageError) ErrorCode() string { return apierror.CodeInvalidInput }

func newUsageError(format string, args ...interface{}) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}
