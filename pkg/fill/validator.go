package fill

import (
	"sort"
	"time"

	"github.com/goliatone/go-deskforms/pkg/adf"
	"github.com/goliatone/go-deskforms/pkg/form"
)

const dateTimeLayout = "2006-01-02T15:04"

// Validate checks a resolved answer set against the form. Required-field
// presence is reported exhaustively; every other check fails on the first
// violation. Validation never mutates its inputs, so repeated calls over
// the same answers yield the same outcome.
func (m *Manager) Validate(resolved Resolved) error {
	var missing []string
	for _, field := range m.form.Fields {
		if !field.Required {
			continue
		}
		if _, ok := resolved[field.ID]; ok {
			continue
		}
		// A compound answer on the parent covers its dependent subfield.
		if field.IsDependent() {
			if _, ok := resolved[field.DependsOn].(Compound); ok {
				continue
			}
		}
		missing = append(missing, field.ID)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingRequiredFieldsError{FieldIDs: missing}
	}

	for _, key := range sortedKeys(resolved) {
		field := m.form.FieldByID(key)
		if field == nil {
			return &UnknownFieldError{Identifier: key}
		}
		value := resolved[key]

		if field.IsDependent() {
			if err := m.validateSubfield(field, answerString(value), resolved); err != nil {
				return err
			}
			continue
		}
		if err := m.validateValue(field, value, resolved); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) validateValue(field *form.Field, value any, resolved Resolved) error {
	// A compound value is the cascading pair still in one piece; check both
	// halves against the option tree.
	if compound, ok := value.(Compound); ok {
		return m.checkCascading(field.ID+":1", field, compound.Parent, compound.Child)
	}

	switch {
	case field.Type == form.FieldTypeDateTime:
		text, ok := value.(string)
		if !ok {
			return &InvalidDateTimeError{FieldID: field.ID, Value: answerString(value)}
		}
		if _, err := time.Parse(dateTimeLayout, text); err != nil {
			return &InvalidDateTimeError{FieldID: field.ID, Value: text}
		}
	case field.Type.IsChoice():
		// Choice fields without a vocabulary are free entry.
		if len(field.Options) == 0 {
			return nil
		}
		for _, item := range choiceValues(value) {
			if !optionIDKnown(field.Options, item) {
				return &InvalidChoiceError{FieldID: field.ID, Value: item}
			}
		}
	case field.Type == form.FieldTypeText || field.Type == form.FieldTypeTextArea:
		if _, ok := value.(string); !ok {
			return &InvalidTextError{FieldID: field.ID, Value: value}
		}
	case field.Type == form.FieldTypeADF:
		text, ok := value.(string)
		if !ok || !adf.Valid([]byte(text)) {
			return &InvalidDocumentError{FieldID: field.ID}
		}
	}
	return nil
}

// validateSubfield cross-checks an explicit "<parent>:1" answer: the parent
// field must be answered, its value must be a known top-level option, and
// the subfield value must be a child of that specific option.
func (m *Manager) validateSubfield(subfield *form.Field, value string, resolved Resolved) error {
	parentID := subfield.DependsOn
	parent := m.form.FieldByID(parentID)
	if parent == nil {
		return &UnknownFieldError{Identifier: parentID}
	}

	parentValue, ok := resolved[parentID]
	if !ok {
		return &CascadingSubfieldError{
			SubfieldID: subfield.ID,
			ParentID:   parentID,
			Reason:     CascadingParentUnset,
		}
	}
	if compound, isCompound := parentValue.(Compound); isCompound {
		// The pair was already matched during resolution; the explicit
		// subfield answer still has to agree with the selected parent.
		return m.checkCascading(subfield.ID, parent, compound.Parent, value)
	}
	return m.checkCascading(subfield.ID, parent, answerString(parentValue), value)
}

func (m *Manager) checkCascading(subfieldID string, parent *form.Field, parentValue, childValue string) error {
	parentOption := form.OptionByLabelOrID(parent.Options, parentValue)
	if parentOption == nil {
		return &CascadingSubfieldError{
			SubfieldID: subfieldID,
			ParentID:   parent.ID,
			Value:      parentValue,
			Reason:     CascadingParentInvalid,
		}
	}
	if form.OptionByLabelOrID(parentOption.Children, childValue) == nil {
		available := make([]string, 0, len(parentOption.Children))
		for _, child := range parentOption.Children {
			available = append(available, child.Label)
		}
		return &CascadingSubfieldError{
			SubfieldID: subfieldID,
			ParentID:   parent.ID,
			Value:      childValue,
			Reason:     CascadingChildInvalid,
			Available:  available,
		}
	}
	return nil
}

func choiceValues(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return []string{answerString(value)}
	}
}

func optionIDKnown(options []form.ValueOption, id string) bool {
	for _, option := range options {
		if option.ID == id {
			return true
		}
	}
	return false
}
