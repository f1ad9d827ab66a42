package lerror

import (
	"errors"
	"fmt"
)

type (
	XError struct {
		Status  int //Http status code
		Code    int //Code in response body
		Message string
	}
)

func (e *XError) Error() string {
	return fmt.Sprintf("Status code: %d, Error code: %d, Message: %s", e.Status, e.Code, e.Message)
}

// Is matches on code so errors.Is(err, InvalidAmount.ToError()) works for any message
func (e *XError) Is(target error) bool {
	t, ok := target.(*XError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func IsLError(err error) bool {
	e := &XError{}
	return errors.As(err, &e)
}

// HasCode reports whether err carries an XError with the given code
func HasCode(err error, code LCode) bool {
	x := Unwrap(err)
	return x != nil && x.Code == code.ToInt()
}

// Unwrap returns the first XError in the chain of err, nil if there is none.
// Works with both std wrapping and github.com/pkg/errors causes.
func Unwrap(err error) *XError {
	var x *XError
	if errors.As(err, &x) {
		return x
	}
	return nil
}
