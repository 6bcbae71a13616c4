package types

import "fmt"

// CustomError is an error that already knows its HTTP answer. Handlers and
// middleware return it and the app's error handler renders the envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewBadRequest builds a 400 CustomError.
func NewBadRequest(message, errorType string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: errorType}
}
