package fill

import (
	"fmt"
	"strings"
)

// UnknownFieldError reports an answer key that matched no field id or label.
type UnknownFieldError struct {
	Identifier string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("fill: field %q not found in the form", e.Identifier)
}

// ValueSide names the half of a compound answer that failed to resolve.
type ValueSide string

const (
	ValueSideParent ValueSide = "parent"
	ValueSideChild  ValueSide = "child"
)

// UnknownValueError reports an answer value that matched no option of the
// field's vocabulary. Side is set for compound answers.
type UnknownValueError struct {
	FieldID string
	Value   string
	Side    ValueSide
}

func (e *UnknownValueError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("fill: %s value %q not found for field %q", e.Side, e.Value, e.FieldID)
	}
	return fmt.Sprintf("fill: value %q not found for field %q", e.Value, e.FieldID)
}

// MissingRequiredFieldsError lists every required field absent from the
// answer set. Unlike the per-value checks this one is exhaustive.
type MissingRequiredFieldsError struct {
	FieldIDs []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("fill: missing required fields: %s", strings.Join(e.FieldIDs, ", "))
}

// InvalidDateTimeError reports a date-time answer that does not match the
// YYYY-MM-DDTHH:MM layout the service expects.
type InvalidDateTimeError struct {
	FieldID string
	Value   string
}

func (e *InvalidDateTimeError) Error() string {
	return fmt.Sprintf("fill: invalid date-time value %q for field %q (want YYYY-MM-DDTHH:MM)", e.Value, e.FieldID)
}

// InvalidChoiceError reports a choice answer outside the field's vocabulary.
type InvalidChoiceError struct {
	FieldID string
	Value   string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("fill: invalid choice value %q for field %q", e.Value, e.FieldID)
}

// InvalidTextError reports a non-string answer on a text field.
type InvalidTextError struct {
	FieldID string
	Value   any
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("fill: invalid text value %v for field %q", e.Value, e.FieldID)
}

// InvalidDocumentError reports a rich-document answer that is not a JSON
// document with top-level type "doc" and an array content.
type InvalidDocumentError struct {
	FieldID string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("fill: invalid document value for field %q", e.FieldID)
}

// Reasons a cascading subfield answer can be rejected.
const (
	CascadingParentUnset   = "parent-unset"
	CascadingParentInvalid = "parent-invalid"
	CascadingChildInvalid  = "child-invalid"
)

// CascadingSubfieldError reports an inconsistent cascading answer: the
// parent field has no value, the parent value is not a known option, or the
// child value is not under the matched parent option.
type CascadingSubfieldError struct {
	SubfieldID string
	ParentID   string
	Value      string
	Reason     string
	// Available lists the valid child labels under the matched parent
	// option; set only when Reason is CascadingChildInvalid.
	Available []string
}

func (e *CascadingSubfieldError) Error() string {
	switch e.Reason {
	case CascadingParentUnset:
		return fmt.Sprintf("fill: subfield %q is set but parent field %q has no value", e.SubfieldID, e.ParentID)
	case CascadingParentInvalid:
		return fmt.Sprintf("fill: invalid parent value %q for field %q (subfield %q)", e.Value, e.ParentID, e.SubfieldID)
	default:
		return fmt.Sprintf("fill: invalid subfield value %q for field %q; available: %s",
			e.Value, e.SubfieldID, strings.Join(e.Available, ", "))
	}
}
