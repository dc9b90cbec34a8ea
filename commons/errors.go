package commons

import "fmt"

type errorWrapper struct {
	tag   string
	msg   string
	cause error
}

// MetaError generates an error with a cached tag
type MetaError func(msg string) error

// MetaWrapError generates an error with a cached tag, keeping the cause for errors.Is/As
type MetaWrapError func(msg string, cause error) error

const errFormat = "[%s] %s"

func (err errorWrapper) Error() string {
	if err.cause == nil {
		return fmt.Sprintf(errFormat, err.tag, err.msg)
	}
	return fmt.Sprintf(errFormat+": %v", err.tag, err.msg, err.cause)
}

func (err errorWrapper) Unwrap() error {
	return err.cause
}

// NewTaggedError generates an error generator given a tag
func NewTaggedError(tag string) MetaError {
	return func(msg string) error {
		return errorWrapper{tag: tag, msg: msg}
	}
}

// NewTaggedWrapper is NewTaggedError for errors caused by another error
func NewTaggedWrapper(tag string) MetaWrapError {
	return func(msg string, cause error) error {
		return errorWrapper{tag: tag, msg: msg, cause: cause}
	}
}
