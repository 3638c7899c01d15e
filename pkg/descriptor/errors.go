package descriptor

import "fmt"

// ConfigError marks a problem in upstream document-type data (malformed
// options payload, unknown field type, duplicate field names). It is distinct
// from per-field validation errors: the user cannot recover from it, so it
// must surface as a fault rather than inline form feedback.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("descriptor: %s", e.Reason)
	}
	return fmt.Sprintf("descriptor: field %q: %s", e.Field, e.Reason)
}
