package html

import (
	"context"
	"strings"
	"testing"

	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/render"
)

func intPtr(v int) *int { return &v }

func offerFields() descriptor.List {
	return descriptor.List{
		{FieldName: "notes", Label: "Notes", Type: descriptor.FieldTypeTextarea, SortOrder: 5},
		{FieldName: "candidateName", Label: "Candidate Name", Type: descriptor.FieldTypeText, Required: true, SortOrder: 0, MinLength: intPtr(2), MaxLength: intPtr(80)},
		{FieldName: "candidateEmail", Label: "Email", Type: descriptor.FieldTypeEmail, SortOrder: 1},
		{FieldName: "phone", Label: "Phone", Type: descriptor.FieldTypePhone, SortOrder: 2},
		{FieldName: "startDate", Label: "Start Date", Type: descriptor.FieldTypeDate, SortOrder: 3},
		{FieldName: "salary", Label: "Salary", Type: descriptor.FieldTypeNumber, SortOrder: 4, MinLength: intPtr(1), MaxLength: intPtr(900000)},
		{FieldName: "level", Label: "Level", Type: descriptor.FieldTypeSelect, SortOrder: 6, Options: `["L3","L4"]`},
		{FieldName: "signature", Label: "Signature", Type: descriptor.FieldTypeSignature, SortOrder: 7},
	}
}

func renderPage(t *testing.T, form render.Form, opts render.RenderOptions) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_FieldOrderFollowsSortOrder(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{})

	order := []string{"candidateName", "candidateEmail", "phone", "startDate", "salary", "notes", "level", "signature"}
	last := -1
	for _, name := range order {
		idx := strings.Index(page, `data-field="`+name+`"`)
		if idx < 0 {
			t.Fatalf("field %q missing from output", name)
		}
		if idx < last {
			t.Fatalf("field %q out of order", name)
		}
		last = idx
	}
}

func TestRender_ControlTypes(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{})

	for _, want := range []string{
		`<textarea id="df-notes" name="notes" rows="5">`,
		`<input type="email" id="df-candidateEmail" name="candidateEmail" inputmode="email"`,
		`<input type="tel" id="df-phone" name="phone" inputmode="tel"`,
		`<input type="date" id="df-startDate"`,
		`<input type="number" id="df-salary" name="salary" min="1" max="900000"`,
		`<input type="text" id="df-signature"`,
		`<select id="df-level" name="level">`,
		`<option value="L3">L3</option>`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestRender_LengthBoundsAndRequiredMarker(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{})

	if !strings.Contains(page, `minlength="2" maxlength="80"`) {
		t.Fatal("text bounds should surface as minlength/maxlength")
	}
	if !strings.Contains(page, "Candidate Name *</label>") {
		t.Fatal("required fields carry the asterisk marker")
	}
	if strings.Contains(page, "Email *</label>") {
		t.Fatal("optional fields must not carry the marker")
	}
}

func TestRender_BoundValuesAndSelection(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{
		Values: map[string]any{
			"candidateName": "Dana Reyes",
			"level":         "L4",
		},
	})

	if !strings.Contains(page, `value="Dana Reyes"`) {
		t.Fatal("typed values must round-trip into the control")
	}
	if !strings.Contains(page, `<option value="L4" selected>L4</option>`) {
		t.Fatal("the stored option must render selected")
	}
}

func TestRender_InlineErrors(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{
		Errors: map[string]string{"candidateName": "Candidate Name is required"},
	})

	if !strings.Contains(page, `<span class="df-error" data-validation="candidateName">Candidate Name is required</span>`) {
		t.Fatal("validation message must render next to its field")
	}
	if !strings.Contains(page, `df-field-text df-invalid`) {
		t.Fatal("invalid fields carry the df-invalid class")
	}
}

func TestRender_MalformedSelectOptionsFailLoudly(t *testing.T) {
	list := descriptor.List{
		{FieldName: "level", Label: "Level", Type: descriptor.FieldTypeSelect, Options: `not-json`},
	}
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), render.NewForm("Offer", list), render.RenderOptions{}); err == nil {
		t.Fatal("malformed select options must fail the render")
	}
}

func TestRender_BusyFieldIndicator(t *testing.T) {
	list := descriptor.List{
		{FieldName: "description", Label: "Description", Type: descriptor.FieldTypeTextarea, SortOrder: 0},
		{FieldName: "summary", Label: "Summary", Type: descriptor.FieldTypeText, SortOrder: 1},
	}
	page := renderPage(t, render.NewForm("NDA", list), render.RenderOptions{BusyField: "description"})

	if strings.Count(page, `class="df-busy"`) != 1 {
		t.Fatal("exactly one busy indicator may render")
	}
	if !strings.Contains(page, `data-autofill="description" disabled>Generating…</button>`) {
		t.Fatal("the busy trigger shows the in-progress label")
	}
	if !strings.Contains(page, `data-autofill="summary" disabled>Auto-fill</button>`) {
		t.Fatal("other triggers disable while one generation is in flight")
	}
}

func TestRender_AutofillTriggerOnlyOnEligibleFields(t *testing.T) {
	page := renderPage(t, render.NewForm("Offer Letter", offerFields()), render.RenderOptions{})

	if !strings.Contains(page, `data-autofill="notes"`) {
		t.Fatal("textarea fields always get the trigger")
	}
	if strings.Contains(page, `data-autofill="startDate"`) {
		t.Fatal("date fields never get the trigger")
	}
	if strings.Contains(page, `data-autofill="candidateName"`) {
		t.Fatal("a plain text field without a free-text hint is ineligible")
	}
}

func TestRender_EscapesUserValues(t *testing.T) {
	list := descriptor.List{
		{FieldName: "partyName", Label: "Party Name", Type: descriptor.FieldTypeText},
	}
	page := renderPage(t, render.NewForm("NDA", list), render.RenderOptions{
		Values: map[string]any{"partyName": `"><script>alert(1)</script>`},
	})
	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Fatal("values must be HTML-escaped")
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(ctx, render.NewForm("NDA", nil), render.RenderOptions{}); err == nil {
		t.Fatal("cancelled context must abort the render")
	}
}
