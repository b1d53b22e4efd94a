package fill

import (
	"fmt"

	"github.com/goliatone/go-deskforms/pkg/form"
)

// Answers maps field identifiers (ids or display labels) to raw answer
// values: a string, a []string for multi-selects, or a Compound pair for
// cascading selects.
type Answers map[string]any

// Compound is a two-level answer: a parent option and one of its children.
type Compound struct {
	Parent string
	Child  string
}

// Resolved maps canonical field ids to canonical values. Compound answers
// keep their two-part shape until the payload builder flattens them, so the
// validator still sees them as one unit.
type Resolved map[string]any

// Resolve converts an answer set addressed by mixed identifiers and labels
// into canonical field ids and canonical option ids. Values of fields
// without an option vocabulary pass through unchanged. Keys are processed
// in sorted order so the first reported error is deterministic.
func (m *Manager) Resolve(answers Answers) (Resolved, error) {
	resolved := make(Resolved, len(answers))
	for _, key := range sortedKeys(answers) {
		field := m.form.FieldByIDOrLabel(key)
		if field == nil {
			return nil, &UnknownFieldError{Identifier: key}
		}
		value, err := resolveValue(field, answers[key])
		if err != nil {
			return nil, err
		}
		resolved[field.ID] = value
	}
	return resolved, nil
}

// resolveValue maps the supplied value onto the field's vocabulary,
// matching by label first and id second. Fields without options accept any
// value verbatim (free entry).
func resolveValue(field *form.Field, value any) (any, error) {
	if !field.Type.HasOptions() || len(field.Options) == 0 {
		return value, nil
	}

	switch v := value.(type) {
	case Compound:
		parent := form.OptionByLabelOrID(field.Options, v.Parent)
		if parent == nil {
			return nil, &UnknownValueError{FieldID: field.ID, Value: v.Parent, Side: ValueSideParent}
		}
		child := form.OptionByLabelOrID(parent.Children, v.Child)
		if child == nil {
			return nil, &UnknownValueError{FieldID: field.ID, Value: v.Child, Side: ValueSideChild}
		}
		return Compound{Parent: parent.ID, Child: child.ID}, nil
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			option := form.OptionByLabelOrID(field.Options, item)
			if option == nil {
				return nil, &UnknownValueError{FieldID: field.ID, Value: item}
			}
			out[i] = option.ID
		}
		return out, nil
	case string:
		option := form.OptionByLabelOrID(field.Options, v)
		if option == nil {
			return nil, &UnknownValueError{FieldID: field.ID, Value: v}
		}
		return option.ID, nil
	default:
		return nil, &UnknownValueError{FieldID: field.ID, Value: fmt.Sprintf("%v", value)}
	}
}

// answerString renders a resolved scalar answer for wire use.
func answerString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
