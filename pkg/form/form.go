package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// FieldByID returns the field with the given wire identifier, or nil.
func (f *Form) FieldByID(id string) *Field {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}

// FieldByIDOrLabel resolves a field by identifier with id precedence: an
// exact id match wins over an exact label match. Listing, resolving, and
// validating all address fields through this one function so precedence
// stays consistent.
func (f *Form) FieldByIDOrLabel(identifier string) *Field {
	if field := f.FieldByID(identifier); field != nil {
		return field
	}
	for i := range f.Fields {
		if f.Fields[i].Label == identifier {
			return &f.Fields[i]
		}
	}
	return nil
}

// RequiredFields returns the fields that must be answered before a payload
// can be built, in schema order.
func (f *Form) RequiredFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field)
		}
	}
	return out
}

// DependentFields returns the synthetic subfields of the form, in schema
// order.
func (f *Form) DependentFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.IsDependent() {
			out = append(out, field)
		}
	}
	return out
}

// HasAutocompleteFields reports whether any field's vocabulary was fetched
// from a remote lookup.
func (f *Form) HasAutocompleteFields() bool {
	for _, field := range f.Fields {
		if field.HasAutocomplete() {
			return true
		}
	}
	return false
}

// HasTemplateFields reports whether any field routes its answer into the
// template sub-document.
func (f *Form) HasTemplateFields() bool {
	for _, field := range f.Fields {
		if field.IsProforma {
			return true
		}
	}
	return false
}

// OptionByLabelOrID resolves an option by identifier with label precedence:
// callers usually address values by what they see on screen, so an exact
// label match wins over an exact id match.
func OptionByLabelOrID(options []ValueOption, identifier string) *ValueOption {
	for i := range options {
		if options[i].Label == identifier {
			return &options[i]
		}
	}
	for i := range options {
		if options[i].ID == identifier {
			return &options[i]
		}
	}
	return nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func plainTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// DescriptionText returns the field description with any HTML markup
// stripped, preferring the plain description when the schema carries one.
func (f Field) DescriptionText() string {
	if strings.TrimSpace(f.Description) != "" {
		return strings.TrimSpace(f.Description)
	}
	return strings.TrimSpace(plainTextPolicy().Sanitize(f.DescriptionHTML))
}

// DescriptionText returns the form description with HTML markup stripped.
func (f *Form) DescriptionText() string {
	return strings.TrimSpace(plainTextPolicy().Sanitize(f.DescriptionHTML))
}
