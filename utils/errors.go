package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is wrapped by every error caused by a malformed command argument,
// such as a NaN step or an unknown steering mode. Use errors.Is to detect it.
var ErrInvalidArgument = errors.New("invalid argument")

// NewInvalidArgumentError is used when a command argument is malformed.
func NewInvalidArgumentError(field string, value interface{}, reason string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s %v %s", field, value, reason)
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError[ExpectedT any](actual interface{}) error {
	return errors.Errorf("expected %s but got %T", TypeStr[ExpectedT](), actual)
}

// TypeStr returns the string representation of the type parameter.
func TypeStr[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
