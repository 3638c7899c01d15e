// Package tui walks a form session interactively in the terminal: one prompt
// per field in presentation order, inline re-prompting on validation
// failures, then a submit / save-draft / cancel decision.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/form"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("tui: aborted")

// ErrCancelled signals the user discarded the session at the final prompt.
var ErrCancelled = errors.New("tui: session cancelled")

// Option configures a Runner.
type Option func(*Runner)

// WithDriver swaps the prompt driver, mainly for tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Runner drives one form session through terminal prompts.
type Runner struct {
	driver PromptDriver
}

// NewRunner constructs a Runner with the survey driver by default.
func NewRunner(options ...Option) *Runner {
	r := &Runner{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run prompts for every field, then asks whether to submit, save a draft, or
// cancel. Validation failures re-prompt the same field; drafts skip
// validation entirely.
func (r *Runner) Run(ctx context.Context, sess *form.Session) (form.Submission, error) {
	if sess == nil {
		return form.Submission{}, errors.New("tui: session is required")
	}

	for _, d := range sess.Fields() {
		if err := r.promptField(ctx, sess, d); err != nil {
			return form.Submission{}, err
		}
	}

	return r.finish(ctx, sess)
}

func (r *Runner) promptField(ctx context.Context, sess *form.Session, d descriptor.Descriptor) error {
	label := promptLabel(d)

	for {
		var response string
		var err error

		switch d.Type {
		case descriptor.FieldTypeSelect:
			response, err = r.promptSelect(ctx, d, label)
		case descriptor.FieldTypeTextarea:
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Help:    d.HelpText,
			})
		case descriptor.FieldTypeText, descriptor.FieldTypeEmail,
			descriptor.FieldTypePhone, descriptor.FieldTypeDate,
			descriptor.FieldTypeSignature, descriptor.FieldTypeNumber:
			response, err = r.driver.Input(ctx, InputConfig{
				Message: label,
				Default: d.Placeholder,
				Help:    d.HelpText,
			})
		default:
			return &descriptor.ConfigError{Field: d.FieldName, Reason: fmt.Sprintf("unknown fieldType %q", d.Type)}
		}
		if err != nil {
			return err
		}

		// Optional fields may be skipped with an empty answer.
		if !d.Required && strings.TrimSpace(response) == "" {
			return nil
		}

		if err := sess.SetValue(d.FieldName, response); err != nil {
			return err
		}
		if msg := sess.Errors()[d.FieldName]; msg != "" {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", d.FieldName, msg)); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (r *Runner) promptSelect(ctx context.Context, d descriptor.Descriptor, label string) (string, error) {
	options, err := d.OptionValues()
	if err != nil {
		// Malformed options are an upstream configuration fault; abort the
		// walk instead of degrading into a free-text prompt.
		return "", err
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: -1,
		Help:         d.HelpText,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}

const (
	actionSubmit = "Submit document"
	actionDraft  = "Save as draft"
	actionCancel = "Cancel"
)

func (r *Runner) finish(ctx context.Context, sess *form.Session) (form.Submission, error) {
	actions := []string{actionSubmit, actionDraft, actionCancel}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      "Done. What next?",
			Options:      actions,
			DefaultIndex: 0,
		})
		if err != nil {
			return form.Submission{}, err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case actionSubmit:
			sub, err := sess.Submit(ctx)
			var verr *form.ValidationError
			if errors.As(err, &verr) {
				for field, msg := range verr.Fields {
					if infoErr := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field, msg)); infoErr != nil {
						return form.Submission{}, infoErr
					}
				}
				continue
			}
			if err != nil {
				return form.Submission{}, err
			}
			return sub, nil
		case actionDraft:
			return sess.SaveDraft(ctx)
		default:
			sess.Cancel()
			return form.Submission{}, ErrCancelled
		}
	}
}

func promptLabel(d descriptor.Descriptor) string {
	label := d.Label
	if label == "" {
		label = d.FieldName
	}
	if d.Required {
		return label + " *"
	}
	return label
}
