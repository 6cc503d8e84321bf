package reqconf

import (
	"errors"
	"fmt"
)

type ResponseError struct {
	Msg  string
	Code int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("got HTTP error code '%d': %s", e.Code, e.Msg)
}

func (e *ResponseError) Is(target error) bool {
	var respErr *ResponseError
	if ok := errors.As(target, &respErr); !ok {
		return false
	}

	return e.Code == respErr.Code
}

func newResponseError(msg string, code int) error {
	return &ResponseError{Msg: msg, Code: code}
}

// ParseError describes a single malformed configuration-string entry,
// that is a token without a '=' separator.
type ParseError struct {
	Token  string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed config entry %q at offset %d: missing '='", e.Token, e.Offset)
}

func newParseError(token string, offset int) error {
	return &ParseError{Token: token, Offset: offset}
}
