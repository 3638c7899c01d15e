package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpText strips help-text markup down to basic inline formatting.
// Descriptors come from upstream services, so their hints are never trusted
// as raw HTML.
func sanitizeHelpText(raw string) string {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br")
		helpPolicy = policy
	})
	return helpPolicy.Sanitize(raw)
}
