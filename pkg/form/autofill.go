package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/docuforge/docforms/pkg/autofill"
)

// Autofill starts a best-effort generation for one field and reports whether
// it actually started. It is a no-op (false) when no generator is wired, the
// field is missing or ineligible, the session is closed, or another
// generation is already in flight. The busy field is a global gate, so two
// completions can never race to write.
//
// The completion runs on its own goroutine: success funnels through SetValue,
// failure leaves the prior value untouched. Either way the busy flag clears,
// and a completion that lands after Cancel or Reset is dropped.
func (s *Session) Autofill(ctx context.Context, fieldName string) bool {
	s.mu.Lock()
	if s.closed || s.generator == nil {
		s.mu.Unlock()
		return false
	}
	d, ok := s.fields.Find(fieldName)
	if !ok || !autofill.Eligible(d.FieldName, d.Type) {
		s.mu.Unlock()
		return false
	}
	if s.busyField != "" {
		s.mu.Unlock()
		return false
	}
	s.busyField = fieldName
	gen := s.generator
	timeout := s.autofillTimeout
	logger := s.logger
	s.mu.Unlock()

	go func() {
		genCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		value, err := gen.Generate(genCtx, d.FieldName, d.Type)

		s.mu.Lock()
		// Liveness check: a Reset or Cancel while generating orphans this
		// completion; its write must not resurrect discarded state.
		stale := s.closed || s.busyField != fieldName
		if s.busyField == fieldName {
			s.busyField = ""
		}
		if err != nil || stale {
			s.mu.Unlock()
			if err != nil {
				logger.Debug("autofill failed",
					zap.String("field", fieldName),
					zap.Error(err))
			}
			return
		}
		s.values[fieldName] = value
		s.revalidateLocked(fieldName)
		s.mu.Unlock()

		logger.Debug("autofill completed", zap.String("field", fieldName))
	}()
	return true
}

// BusyField reports the field currently auto-filling, or "".
func (s *Session) BusyField() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busyField
}
