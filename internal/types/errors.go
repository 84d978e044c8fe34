package types

import "fmt"

// Error represents a flow error with a stable code
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("error: %s", e.Code)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// ParseError reports text that did not match the expected
// currency-numeral pattern
type ParseError struct {
	Text string `json:"text"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse amount from text: %q", e.Text)
}
