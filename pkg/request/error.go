package request

import (
	"fmt"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

// KindRequest is the Kind of every rejection produced by this package.
const KindRequest = "request"

// Rejection codes that are not HTTP statuses.
const (
	CodeTransport = 0
	CodeTimeout   = -1
	CodeAbort     = -2
)

// Errors returned synchronously by Request.
var (
	ErrMissingURL        = werrors.New("R001")
	ErrUnsupportedParams = werrors.New("R002")
	ErrUnsupportedTarget = werrors.New("R003")
)

// Error is the rejection value of a failed call.
type Error struct {
	Kind    string
	Code    int
	Message string

	// Err is the underlying transport or decoding error, if any.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%d): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *Error) Timeout() bool { return e.Code == CodeTimeout }

func newError(code int, msg string, err error) *Error {
	return &Error{Kind: KindRequest, Code: code, Message: msg, Err: err}
}
