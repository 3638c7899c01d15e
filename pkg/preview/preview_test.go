package preview

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docuforge/docforms/pkg/descriptor"
)

func ndaFields() descriptor.List {
	return descriptor.List{
		{FieldName: "notes", Label: "Notes", Type: descriptor.FieldTypeTextarea, SortOrder: 3},
		{FieldName: "partyName", Label: "Party Name", Type: descriptor.FieldTypeText, SortOrder: 0},
		{FieldName: "startDate", Label: "Start Date", Type: descriptor.FieldTypeDate, SortOrder: 1},
		{FieldName: "level", Label: "Level", Type: descriptor.FieldTypeSelect, SortOrder: 2, Options: `["A","B"]`},
	}
}

func TestProject_OrderFollowsSortOrder(t *testing.T) {
	values := map[string]any{
		"notes":     "confidential",
		"partyName": "Acme",
		"level":     "B",
	}
	p := Project("NDA", ndaFields(), values)

	var got []string
	for _, e := range p.Entries {
		got = append(got, e.FieldName)
	}
	if diff := cmp.Diff([]string{"partyName", "level", "notes"}, got); diff != "" {
		t.Fatalf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_OmitsAbsentAndBlankValues(t *testing.T) {
	values := map[string]any{
		"partyName": "   ",
		"notes":     "",
		"level":     "A",
	}
	p := Project("NDA", ndaFields(), values)

	if len(p.Entries) != 1 || p.Entries[0].FieldName != "level" {
		t.Fatalf("expected only level, got %+v", p.Entries)
	}
}

func TestProject_AllBlankIsEmptyState(t *testing.T) {
	values := map[string]any{
		"partyName": "",
		"startDate": "",
		"level":     "",
		"notes":     "",
	}
	p := Project("NDA", ndaFields(), values)
	if !p.Empty() {
		t.Fatalf("all-blank values must project to the empty state, got %+v", p.Entries)
	}
	if !strings.Contains(Text(p), "No fields filled yet.") {
		t.Fatal("text output must carry the empty-state message")
	}
	if !strings.Contains(HTML(p), "df-preview-empty") {
		t.Fatal("html output must carry the empty-state element")
	}
}

func TestFormatValue_DateLongForm(t *testing.T) {
	got := FormatValue(descriptor.FieldTypeDate, "2024-03-01")
	if got != "Friday, March 1, 2024" {
		t.Fatalf("date format mismatch: %q", got)
	}
}

func TestFormatValue_UnparseableDatePassesThrough(t *testing.T) {
	got := FormatValue(descriptor.FieldTypeDate, "sometime soon")
	if got != "sometime soon" {
		t.Fatalf("unparseable dates render as entered, got %q", got)
	}
}

func TestProject_DateEntryUsesLongForm(t *testing.T) {
	p := Project("NDA", ndaFields(), map[string]any{"startDate": "2024-03-01"})
	if len(p.Entries) != 1 {
		t.Fatalf("expected one entry, got %+v", p.Entries)
	}
	if p.Entries[0].Value != "Friday, March 1, 2024" {
		t.Fatalf("date value mismatch: %q", p.Entries[0].Value)
	}
}

func TestText_LabelColonValueLines(t *testing.T) {
	p := Project("NDA", ndaFields(), map[string]any{
		"partyName": "Acme",
		"level":     "B",
	})
	out := Text(p)
	if !strings.Contains(out, "Party Name: Acme\n") {
		t.Fatalf("missing line in %q", out)
	}
	if !strings.Contains(out, "Level: B\n") {
		t.Fatalf("missing line in %q", out)
	}
	if strings.Index(out, "Party Name") > strings.Index(out, "Level") {
		t.Fatal("text lines must follow sortOrder")
	}
}

func TestHTML_SanitizesValuesAndKeepsLineBreaks(t *testing.T) {
	p := Project("NDA", ndaFields(), map[string]any{
		"notes": "line one\n<script>alert(1)</script>line two",
	})
	out := HTML(p)
	if strings.Contains(out, "<script>") {
		t.Fatal("markup in values must be stripped")
	}
	if !strings.Contains(out, "line one<br/>") {
		t.Fatalf("textarea line breaks should render as <br/>, got %q", out)
	}
}

func TestProject_NonStringValuesStringify(t *testing.T) {
	list := descriptor.List{
		{FieldName: "salary", Label: "Salary", Type: descriptor.FieldTypeNumber, SortOrder: 0},
	}
	p := Project("Offer", list, map[string]any{"salary": 90000})
	if len(p.Entries) != 1 || p.Entries[0].Value != "90000" {
		t.Fatalf("numeric value mismatch: %+v", p.Entries)
	}
}

func TestProject_FallsBackToFieldNameWhenLabelMissing(t *testing.T) {
	list := descriptor.List{{FieldName: "partyName", Type: descriptor.FieldTypeText}}
	p := Project("NDA", list, map[string]any{"partyName": "Acme"})
	if p.Entries[0].Label != "partyName" {
		t.Fatalf("label fallback mismatch: %q", p.Entries[0].Label)
	}
}
