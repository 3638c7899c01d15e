package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/form"
)

func intPtr(v int) *int { return &v }

// scriptDriver replays canned answers: Input and TextArea consume from
// inputs in call order, Select consumes from selects.
type scriptDriver struct {
	inputs  []string
	selects []int
	infos   []string
}

func (d *scriptDriver) next(t string) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("script exhausted: " + t)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	return d.next("input")
}

func (d *scriptDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	return d.next("textarea")
}

func (d *scriptDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return false, errors.New("unexpected confirm")
}

func (d *scriptDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("script exhausted: select")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func ndaSession(t *testing.T, opts ...form.Option) *form.Session {
	t.Helper()
	list := descriptor.List{
		{FieldName: "partyName", Label: "Party Name", Type: descriptor.FieldTypeText, Required: true, SortOrder: 0, MinLength: intPtr(2)},
		{FieldName: "level", Label: "Level", Type: descriptor.FieldTypeSelect, SortOrder: 1, Options: `["A","B"]`},
		{FieldName: "notes", Label: "Notes", Type: descriptor.FieldTypeTextarea, SortOrder: 2},
	}
	sess, err := form.New("NDA", list, opts...)
	require.NoError(t, err)
	return sess
}

func TestRun_SubmitHappyPath(t *testing.T) {
	driver := &scriptDriver{
		inputs:  []string{"Acme", ""},  // partyName, notes (skipped: optional)
		selects: []int{1, 0},           // level -> "B", finish -> submit
	}
	sess := ndaSession(t)

	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)

	assert.False(t, sub.IsDraft)
	assert.Equal(t, "Acme", sub.Values["partyName"])
	assert.Equal(t, "B", sub.Values["level"])
	_, hasNotes := sub.Values["notes"]
	assert.False(t, hasNotes, "skipped optional fields stay unset")
	assert.Empty(t, driver.infos)
}

func TestRun_RepromptsOnInvalidAnswer(t *testing.T) {
	driver := &scriptDriver{
		inputs:  []string{"A", "Acme", ""},
		selects: []int{0, 0},
	}
	sess := ndaSession(t)

	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "Acme", sub.Values["partyName"])
	require.Len(t, driver.infos, 1)
	assert.Contains(t, driver.infos[0], "Minimum 2 characters required")
}

func TestRun_DraftPath(t *testing.T) {
	driver := &scriptDriver{
		inputs:  []string{"Acme", ""},
		selects: []int{0, 1}, // level -> "A", finish -> save as draft
	}
	sess := ndaSession(t)

	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, sub.IsDraft)
}

func TestRun_CancelPath(t *testing.T) {
	driver := &scriptDriver{
		inputs:  []string{"Acme", ""},
		selects: []int{0, 2}, // finish -> cancel
	}
	sess := ndaSession(t)

	_, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.ErrorIs(t, err, ErrCancelled)
	assert.True(t, sess.Closed())
}

func TestRun_CrossFieldRuleRepromptsDuringWalk(t *testing.T) {
	list := descriptor.List{
		{FieldName: "password", Label: "Password", Type: descriptor.FieldTypeText, Required: true, SortOrder: 0},
		{FieldName: "confirm", Label: "Confirm", Type: descriptor.FieldTypeText, Required: true, SortOrder: 1},
	}
	rule := func(values map[string]any) map[string]string {
		if values["password"] != values["confirm"] {
			return map[string]string{"confirm": "Passwords do not match"}
		}
		return nil
	}
	sess, err := form.New("Account", list, form.WithCrossFieldRule(rule))
	require.NoError(t, err)

	driver := &scriptDriver{
		inputs:  []string{"hunter2", "hunter3", "hunter2"},
		selects: []int{0},
	}
	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, "hunter2", sub.Values["confirm"])
	found := false
	for _, msg := range driver.infos {
		if strings.Contains(msg, "Passwords do not match") {
			found = true
		}
	}
	assert.True(t, found, "the mismatch must be reported, got %v", driver.infos)
}

func TestRun_SubmitValidationFailureReportsAndReasks(t *testing.T) {
	// The rule fires only at submit: the walk skips the optional field, so no
	// per-field re-prompt catches it.
	list := descriptor.List{
		{FieldName: "password", Label: "Password", Type: descriptor.FieldTypeText, Required: true, SortOrder: 0},
		{FieldName: "confirm", Label: "Confirm", Type: descriptor.FieldTypeText, SortOrder: 1},
	}
	rule := func(values map[string]any) map[string]string {
		if _, ok := values["confirm"]; !ok {
			return map[string]string{"confirm": "Confirmation is required"}
		}
		return nil
	}
	sess, err := form.New("Account", list, form.WithCrossFieldRule(rule))
	require.NoError(t, err)

	driver := &scriptDriver{
		inputs:  []string{"hunter2", ""}, // confirm skipped
		selects: []int{0, 1},             // submit fails validation, then save as draft
	}
	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)

	assert.True(t, sub.IsDraft)
	found := false
	for _, msg := range driver.infos {
		if strings.Contains(msg, "Confirmation is required") {
			found = true
		}
	}
	assert.True(t, found, "the failed submit must be reported, got %v", driver.infos)
}

func TestRun_MalformedSelectOptionsAbort(t *testing.T) {
	list := descriptor.List{
		{FieldName: "level", Label: "Level", Type: descriptor.FieldTypeSelect, Options: `not-json`},
	}
	sess, err := form.New("NDA", list)
	require.NoError(t, err)

	driver := &scriptDriver{selects: []int{0}}
	_, err = NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	var cfgErr *descriptor.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestRun_OutOfRangeFinishChoiceReasks(t *testing.T) {
	driver := &scriptDriver{
		inputs:  []string{"Acme", ""},
		selects: []int{0, -1, 0}, // bogus finish answer, then submit
	}
	sess := ndaSession(t)

	sub, err := NewRunner(WithDriver(driver)).Run(context.Background(), sess)
	require.NoError(t, err)
	assert.False(t, sub.IsDraft)
}
