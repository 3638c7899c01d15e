package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSessionClosed signals an operation against a discarded session.
var ErrSessionClosed = errors.New("form: session closed")

// ValidationError carries every failing field from a rejected submit. It
// never escapes past the controller boundary as anything but a return value:
// the same messages land in the session's error set for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "form: validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "form: validation failed: " + strings.Join(parts, "; ")
}
