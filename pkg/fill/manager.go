// Package fill turns caller-supplied answers into the wire payload a
// request form submission expects. It resolves answers addressed by field
// id or label into canonical ids, validates them per field-type semantics,
// and builds the two-part payload: flat key/value fields plus the nested
// template sub-document.
//
// Every operation is a pure function over the immutable form and a fresh
// per-call answer map, so one Manager can serve concurrent submissions
// without coordination.
package fill

import (
	"errors"
	"sort"

	"github.com/goliatone/go-deskforms/pkg/form"
)

// Manager exposes the query and fill surface over one parsed form.
type Manager struct {
	form *form.Form
}

// NewManager wraps a parsed form.
func NewManager(f *form.Form) (*Manager, error) {
	if f == nil {
		return nil, errors.New("fill: form is required")
	}
	return &Manager{form: f}, nil
}

// Form returns the managed form.
func (m *Manager) Form() *form.Form {
	return m.form
}

// FieldInfo is one row of the field listing.
type FieldInfo struct {
	ID          string
	Label       string
	Type        form.FieldType
	Description string
	Required    bool
}

// ValueInfo is one selectable value of a field.
type ValueInfo struct {
	ID    string
	Label string
}

// ListFields lists every field of the form in schema order.
func (m *Manager) ListFields() []FieldInfo {
	out := make([]FieldInfo, 0, len(m.form.Fields))
	for _, field := range m.form.Fields {
		out = append(out, FieldInfo{
			ID:          field.ID,
			Label:       field.Label,
			Type:        field.Type,
			Description: field.DescriptionText(),
			Required:    field.Required,
		})
	}
	return out
}

// ListFieldValues lists the selectable values of the field addressed by id
// or label. For two-level fields a non-empty parentValue scopes the listing
// to the children of that parent option.
func (m *Manager) ListFieldValues(identifier, parentValue string) ([]ValueInfo, error) {
	field := m.form.FieldByIDOrLabel(identifier)
	if field == nil {
		return nil, &UnknownFieldError{Identifier: identifier}
	}

	options := field.Options
	if parentValue != "" {
		parent := form.OptionByLabelOrID(field.Options, parentValue)
		if parent == nil {
			return nil, &UnknownValueError{FieldID: field.ID, Value: parentValue, Side: ValueSideParent}
		}
		options = parent.Children
	}

	out := make([]ValueInfo, 0, len(options))
	for _, option := range options {
		out = append(out, ValueInfo{ID: option.ID, Label: option.Label})
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
