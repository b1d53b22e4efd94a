package form_test

import (
	"testing"

	"github.com/goliatone/go-deskforms/pkg/form"
)

func queryForm() *form.Form {
	return &form.Form{
		Fields: []form.Field{
			{ID: "summary", Label: "Summary", Type: form.FieldTypeText, Required: true},
			// A label that collides with another field's id: id match must win.
			{ID: "priority", Label: "summary", Type: form.FieldTypeSelect},
			{ID: "cf:1", Label: "Area (Subfield)", Type: form.FieldTypeCascadingSelect, DependsOn: "cf"},
		},
	}
}

func TestFieldByIDOrLabel_IDPrecedence(t *testing.T) {
	f := queryForm()

	got := f.FieldByIDOrLabel("summary")
	if got == nil || got.ID != "summary" {
		t.Fatalf("identifier %q resolved to %+v, want id match", "summary", got)
	}

	got = f.FieldByIDOrLabel("Summary")
	if got == nil || got.ID != "summary" {
		t.Fatalf("label lookup failed: %+v", got)
	}

	if f.FieldByIDOrLabel("nope") != nil {
		t.Fatal("unknown identifier should resolve to nil")
	}
}

func TestOptionByLabelOrID_LabelPrecedence(t *testing.T) {
	options := []form.ValueOption{
		{ID: "1", Label: "High"},
		// A label colliding with another option's id: label match wins.
		{ID: "2", Label: "1"},
	}

	got := form.OptionByLabelOrID(options, "1")
	if got == nil || got.ID != "2" {
		t.Fatalf("identifier %q resolved to %+v, want label match", "1", got)
	}

	got = form.OptionByLabelOrID(options, "High")
	if got == nil || got.ID != "1" {
		t.Fatalf("label lookup failed: %+v", got)
	}

	if form.OptionByLabelOrID(options, "nope") != nil {
		t.Fatal("unknown identifier should resolve to nil")
	}
}

func TestFormQueries(t *testing.T) {
	f := queryForm()

	required := f.RequiredFields()
	if len(required) != 1 || required[0].ID != "summary" {
		t.Errorf("required fields = %+v", required)
	}

	dependent := f.DependentFields()
	if len(dependent) != 1 || dependent[0].ID != "cf:1" {
		t.Errorf("dependent fields = %+v", dependent)
	}

	if f.HasAutocompleteFields() {
		t.Error("no field has an autocomplete endpoint")
	}
	if f.HasTemplateFields() {
		t.Error("no field is template-mapped")
	}
}

func TestDescriptionText_StripsMarkup(t *testing.T) {
	field := form.Field{DescriptionHTML: "<p>Short <b>description</b></p>"}
	if got := field.DescriptionText(); got != "Short description" {
		t.Errorf("description text = %q", got)
	}

	// A plain description wins over the HTML variant.
	field.Description = "plain wins"
	if got := field.DescriptionText(); got != "plain wins" {
		t.Errorf("description text = %q", got)
	}
}
