package form

import (
	"sort"
	"time"
)

// Submission is the payload handed to submit/draft collaborators: the values
// map plus document metadata.
type Submission struct {
	ID           string
	DocumentType string
	Values       map[string]any
	CreatedAt    time.Time
	IsDraft      bool
}

// Payload flattens the submission into the wire shape collaborators expect:
// the field values spread at the top level alongside documentType, createdAt
// (ISO-8601) and isDraft. Field values win no collisions with the metadata
// keys; metadata is written last.
func (s Submission) Payload() map[string]any {
	out := make(map[string]any, len(s.Values)+4)
	for k, v := range s.Values {
		out[k] = v
	}
	out["documentType"] = s.DocumentType
	out["createdAt"] = s.CreatedAt.Format(time.RFC3339)
	out["isDraft"] = s.IsDraft
	if s.ID != "" {
		out["submissionId"] = s.ID
	}
	return out
}

// FieldNames lists the populated field names sorted for deterministic output.
func (s Submission) FieldNames() []string {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
