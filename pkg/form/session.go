// Package form orchestrates one document form session: it owns the values
// map and error set for the lifetime of the session, funnels every mutation
// through a single setter, and packages submit/draft payloads for external
// collaborators. Network, routing and persistence stay with the caller.
package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docuforge/docforms/pkg/autofill"
	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/schema"
)

// SubmitFunc receives a validated submission.
type SubmitFunc func(ctx context.Context, sub Submission) error

// DraftFunc receives an unvalidated draft submission.
type DraftFunc func(ctx context.Context, sub Submission) error

// CancelFunc is notified when the session is discarded.
type CancelFunc func()

// CrossFieldRule checks relations between fields (password confirmation and
// the like) and returns a message per failing field.
type CrossFieldRule func(values map[string]any) map[string]string

// Session is the form controller. All access is serialized internally, so an
// auto-fill completion and a user edit can never interleave a single field
// update.
type Session struct {
	mu sync.Mutex

	documentType string
	fields       descriptor.List
	schema       *schema.Schema
	values       map[string]any
	errs         map[string]string

	// crossFlagged remembers which error entries the cross-field rules put
	// there, so a later revalidation can retract them when the relation heals.
	crossFlagged map[string]struct{}

	// busyField implements the global auto-fill mutual exclusion: at most one
	// field may be generating at a time.
	busyField string
	closed    bool

	submit     SubmitFunc
	draft      DraftFunc
	cancel     CancelFunc
	crossRules []CrossFieldRule

	generator       autofill.Generator
	autofillTimeout time.Duration

	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a session at construction time.
type Option func(*Session)

// WithSubmitFunc wires the external create-document collaborator.
func WithSubmitFunc(fn SubmitFunc) Option {
	return func(s *Session) { s.submit = fn }
}

// WithDraftFunc wires the external save-draft collaborator.
func WithDraftFunc(fn DraftFunc) Option {
	return func(s *Session) { s.draft = fn }
}

// WithCancelFunc wires the external return-to-selection collaborator.
func WithCancelFunc(fn CancelFunc) Option {
	return func(s *Session) { s.cancel = fn }
}

// WithGenerator supplies the auto-fill capability. Without one, Autofill is a
// no-op for every field.
func WithGenerator(gen autofill.Generator) Option {
	return func(s *Session) { s.generator = gen }
}

// WithAutofillTimeout bounds each generation call. An unbounded call would
// permanently hold the mutual-exclusion flag on a hung backend.
func WithAutofillTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.autofillTimeout = d
		}
	}
}

// WithCrossFieldRule appends a rule evaluated on every value change and on
// submit, after the per-field rules.
func WithCrossFieldRule(rule CrossFieldRule) Option {
	return func(s *Session) {
		if rule != nil {
			s.crossRules = append(s.crossRules, rule)
		}
	}
}

// WithLogger attaches a structured logger. The session is silent by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

const defaultAutofillTimeout = 10 * time.Second

// New builds a session for one document type: generates the validation
// schema, seeds an empty values map and error set, and applies options.
func New(documentType string, list descriptor.List, options ...Option) (*Session, error) {
	s := &Session{
		autofillTimeout: defaultAutofillTimeout,
		logger:          zap.NewNop(),
		now:             time.Now,
		newID:           uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if err := s.Reset(documentType, list); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset replaces the descriptor list: the schema is rebuilt and the values
// map and error set are discarded. Any in-flight auto-fill completion is
// orphaned and will be ignored.
func (s *Session) Reset(documentType string, list descriptor.List) error {
	generated, err := schema.Generate(list)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.documentType = documentType
	s.fields = list.Sorted()
	s.schema = generated
	s.values = make(map[string]any, len(list))
	s.errs = make(map[string]string)
	s.crossFlagged = make(map[string]struct{})
	s.busyField = ""
	return nil
}

// DocumentType reports the document type this session edits.
func (s *Session) DocumentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentType
}

// Fields returns the descriptor list in presentation order.
func (s *Session) Fields() descriptor.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(descriptor.List, len(s.fields))
	copy(out, s.fields)
	return out
}

// SetValue updates one field and revalidates it together with any cross-field
// rules. This is the single mutation funnel for both user edits and auto-fill
// completions.
func (s *Session) SetValue(fieldName string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if _, ok := s.schema.Rule(fieldName); !ok {
		return fmt.Errorf("form: unknown field %q", fieldName)
	}

	s.values[fieldName] = value
	s.revalidateLocked(fieldName)
	return nil
}

// revalidateLocked recomputes the error entry for the edited field, then
// replaces every cross-field rule outcome. Fields the cross rules flagged on
// the previous pass are re-derived from their own rules first, so fixing a
// relation by editing the other field retracts the stale message. Callers
// hold s.mu.
func (s *Session) revalidateLocked(fieldName string) {
	s.applyFieldRuleLocked(fieldName)

	for field := range s.crossFlagged {
		if field != fieldName {
			s.applyFieldRuleLocked(field)
		}
	}
	s.crossFlagged = make(map[string]struct{})
	for _, cross := range s.crossRules {
		for field, msg := range cross(s.values) {
			if msg != "" {
				s.errs[field] = msg
				s.crossFlagged[field] = struct{}{}
			}
		}
	}
}

// applyFieldRuleLocked sets or clears one field's error entry from its own
// rule. Callers hold s.mu.
func (s *Session) applyFieldRuleLocked(fieldName string) {
	rule, ok := s.schema.Rule(fieldName)
	if !ok {
		delete(s.errs, fieldName)
		return
	}
	if msg := rule.Validate(s.values[fieldName]); msg != "" {
		s.errs[fieldName] = msg
	} else {
		delete(s.errs, fieldName)
	}
}

// Value reads the current value for a field.
func (s *Session) Value(fieldName string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[fieldName]
	return v, ok
}

// Values returns a copy of the values map for preview projection.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// Errors returns a copy of the current error set.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// Submit validates the whole values map. If any rule fails, every failure is
// surfaced in the error set and the collaborator is not called. On
// collaborator failure the values map stays intact so the user can retry.
func (s *Session) Submit(ctx context.Context) (Submission, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Submission{}, ErrSessionClosed
	}

	failures := s.schema.ValidateAll(s.values)
	crossFlagged := make(map[string]struct{})
	for _, cross := range s.crossRules {
		for field, msg := range cross(s.values) {
			if msg != "" {
				failures[field] = msg
				crossFlagged[field] = struct{}{}
			}
		}
	}
	if len(failures) > 0 {
		s.errs = failures
		s.crossFlagged = crossFlagged
		s.mu.Unlock()
		return Submission{}, &ValidationError{Fields: failures}
	}

	s.errs = make(map[string]string)
	s.crossFlagged = make(map[string]struct{})
	sub := Submission{
		ID:           s.newID(),
		DocumentType: s.documentType,
		Values:       cloneValues(s.values),
		CreatedAt:    s.now().UTC(),
	}
	submit := s.submit
	logger := s.logger
	s.mu.Unlock()

	if submit != nil {
		if err := submit(ctx, sub); err != nil {
			logger.Warn("submit collaborator failed",
				zap.String("document_type", sub.DocumentType),
				zap.Error(err))
			return Submission{}, fmt.Errorf("form: submit: %w", err)
		}
	}
	logger.Info("document submitted",
		zap.String("document_type", sub.DocumentType),
		zap.String("submission_id", sub.ID))
	return sub, nil
}

// SaveDraft packages the current values regardless of validity. Partial
// documents are expected, so drafts bypass validation.
func (s *Session) SaveDraft(ctx context.Context) (Submission, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Submission{}, ErrSessionClosed
	}
	sub := Submission{
		ID:           s.newID(),
		DocumentType: s.documentType,
		Values:       cloneValues(s.values),
		CreatedAt:    s.now().UTC(),
		IsDraft:      true,
	}
	draft := s.draft
	logger := s.logger
	s.mu.Unlock()

	if draft != nil {
		if err := draft(ctx, sub); err != nil {
			return Submission{}, fmt.Errorf("form: save draft: %w", err)
		}
	}
	logger.Debug("draft saved",
		zap.String("document_type", sub.DocumentType),
		zap.String("submission_id", sub.ID))
	return sub, nil
}

// Cancel discards the session and notifies the collaborator. Late auto-fill
// completions observe the closed flag and drop their writes.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.busyField = ""
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Closed reports whether the session has been discarded.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
