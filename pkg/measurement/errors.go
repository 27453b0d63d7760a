package measurement

import "errors"

// ErrRejected matches every *Error returned by the client.
var ErrRejected = errors.New("analytics server responded with an error")

// Error is returned when the collection endpoint rejects a hit or answers with
// something that cannot be interpreted.
type Error struct {
	Message    string
	StatusCode int
	// Data is the decoded JSON body, when one could be decoded. Objects decode
	// to map[string]any.
	Data any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return ErrRejected
}

func rejected(status int, data any) *Error {
	return &Error{Message: ErrRejected.Error(), StatusCode: status, Data: data}
}

func rejectedText(status int, text string) *Error {
	return &Error{Message: ErrRejected.Error() + ": " + text, StatusCode: status}
}
