package client

import "fmt"

// Code classifies the failures reported by the metadata service.
type Code int

const (
	Unknown Code = iota
	NotFound
	InvalidPath
	InvalidArgument
	Unavailable
)

func (c Code) String() string {
	switch c {
	case NotFound:
		return "NotFound"
	case InvalidPath:
		return "InvalidPath"
	case InvalidArgument:
		return "InvalidArgument"
	case Unavailable:
		return "Unavailable"
	}
	return "Unknown"
}

// Error is a failure raised by the file system, as opposed to a transport or local I/O error.
type Error struct {
	Code    Code
	Message string
}

var (
	ErrNotFound        = &Error{Code: NotFound}
	ErrInvalidPath     = &Error{Code: InvalidPath}
	ErrInvalidArgument = &Error{Code: InvalidArgument}
	ErrUnavailable     = &Error{Code: Unavailable}
)

func NewError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

// Is matches the sentinels (no message) by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Code == e.Code
	}
	return t.Code == e.Code && t.Message == e.Message
}
