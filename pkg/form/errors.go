package form

import "fmt"

// ParseError reports a structurally required path missing or malformed in
// the raw portal document.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("form: required path %q missing or malformed", e.Path)
}
