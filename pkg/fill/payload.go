package fill

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-deskforms/pkg/adf"
	"github.com/goliatone/go-deskforms/pkg/form"
)

// Filled pairs a form with a resolved, validated, flattened answer set,
// ready to be serialised into the submission body.
type Filled struct {
	form   *form.Form
	values map[string]any
}

// Fill runs the whole pipeline over one answer set: resolve identifiers and
// labels to canonical ids, validate per field-type semantics, and flatten
// compound answers into their "<id>" / "<id>:1" wire keys.
func (m *Manager) Fill(answers Answers) (*Filled, error) {
	resolved, err := m.Resolve(answers)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(resolved); err != nil {
		return nil, err
	}
	return &Filled{form: m.form, values: flatten(resolved)}, nil
}

func flatten(resolved Resolved) map[string]any {
	flat := make(map[string]any, len(resolved))
	for key, value := range resolved {
		if compound, ok := value.(Compound); ok {
			flat[key] = compound.Parent
			flat[key+":1"] = compound.Child
			continue
		}
		flat[key] = value
	}
	return flat
}

// Values returns a copy of the flattened answers keyed by wire field id.
func (f *Filled) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for key, value := range f.values {
		out[key] = value
	}
	return out
}

// Form returns the form this answer set was filled against.
func (f *Filled) Form() *form.Form {
	return f.form
}

// Payload serialises the answers into the URL-encoded submission body: one
// key per non-template field, plus the reserved projectId and
// proformaFormData keys. Key order is the sorted order url.Values encodes,
// which keeps payloads deterministic.
func (f *Filled) Payload() (string, error) {
	values := url.Values{}
	for _, field := range f.form.Fields {
		if field.IsProforma {
			continue
		}
		raw, ok := f.values[field.ID]
		if !ok {
			continue
		}
		if list, isList := raw.([]string); isList {
			for _, item := range list {
				values.Add(field.ID, item)
			}
			continue
		}
		values.Add(field.ID, answerString(raw))
	}

	templateData, err := f.templateData()
	if err != nil {
		return "", err
	}
	values.Set("proformaFormData", string(templateData))
	values.Set("projectId", f.form.ProjectID)

	return values.Encode(), nil
}

// templateData builds the nested proformaFormData document: answers keyed
// by template question id, each shaped per the question's kind.
func (f *Filled) templateData() ([]byte, error) {
	answers := map[string]any{}
	for _, field := range f.form.Fields {
		if !field.IsProforma {
			continue
		}
		raw, ok := f.values[field.ID]
		if !ok {
			continue
		}
		answer, err := shapeTemplateAnswer(field, raw)
		if err != nil {
			return nil, err
		}
		answers[field.TemplateQuestionID] = answer
	}

	doc := struct {
		TemplateFormID *int           `json:"templateFormId"`
		Answers        map[string]any `json:"answers"`
	}{
		TemplateFormID: f.form.TemplateID,
		Answers:        answers,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("fill: encode template data: %w", err)
	}
	return data, nil
}

func shapeTemplateAnswer(field form.Field, raw any) (any, error) {
	kind := field.Type
	// The service expects any templated question with more than one
	// available option as a multi-choice, whatever its declared kind.
	if len(field.Options) > 1 {
		kind = form.FieldTypeChoice
	}

	switch {
	case kind.IsRichText():
		return map[string]any{"adf": adf.NewDocument(answerString(raw))}, nil
	case kind == form.FieldTypeChoice:
		choices, err := choiceIDs(field, raw)
		if err != nil {
			return nil, err
		}
		return map[string]any{"text": "", "choices": choices}, nil
	case kind == form.FieldTypeDateTime:
		date, clock, _ := strings.Cut(answerString(raw), "T")
		return map[string]any{"date": date, "time": clock}, nil
	default:
		return map[string]any{"text": answerString(raw)}, nil
	}
}

// choiceIDs maps choice answers onto the field's canonical option ids.
// Questions re-typed to choice at build time skipped the resolver's
// vocabulary matching, so labels are still possible here.
func choiceIDs(field form.Field, raw any) ([]string, error) {
	values := choiceList(raw)
	if len(field.Options) == 0 {
		return values, nil
	}
	out := make([]string, len(values))
	for i, value := range values {
		option := form.OptionByLabelOrID(field.Options, value)
		if option == nil {
			return nil, &UnknownValueError{FieldID: field.ID, Value: value}
		}
		out[i] = option.ID
	}
	return out, nil
}

func choiceList(raw any) []string {
	if list, ok := raw.([]string); ok {
		return list
	}
	return []string{answerString(raw)}
}
