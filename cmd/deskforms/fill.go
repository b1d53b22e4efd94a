package main

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-deskforms/pkg/fill"
	"github.com/goliatone/go-deskforms/pkg/form"
)

// collectAnswers walks the form fields in schema order and prompts for each
// one. Synthetic subfields are skipped: their value is captured as the
// child half of the parent's compound answer.
func collectAnswers(ctx context.Context, driver PromptDriver, f *form.Form) (fill.Answers, error) {
	answers := fill.Answers{}
	for _, field := range f.Fields {
		if field.IsDependent() {
			continue
		}
		value, skipped, err := promptField(ctx, driver, field)
		if err != nil {
			return nil, err
		}
		if skipped {
			continue
		}
		answers[field.ID] = value
	}
	return answers, nil
}

func promptField(ctx context.Context, driver PromptDriver, field form.Field) (any, bool, error) {
	label := field.Label
	if field.Required {
		label += " (required)"
	}
	help := field.DescriptionText()

	switch {
	case field.Type == form.FieldTypeCascadingSelect && len(field.Options) > 0:
		return promptCascading(ctx, driver, field, label, help)
	case field.Type == form.FieldTypeMultiSelect && len(field.Options) > 0:
		indexes, err := driver.MultiSelect(ctx, SelectConfig{Message: label, Options: optionLabels(field.Options), Help: help})
		if err != nil {
			return nil, false, err
		}
		if len(indexes) == 0 {
			return nil, true, nil
		}
		values := make([]string, len(indexes))
		for i, idx := range indexes {
			values[i] = field.Options[idx].ID
		}
		return values, false, nil
	case field.Type.HasOptions() && len(field.Options) > 0,
		field.Type == form.FieldTypeObjectPicker && len(field.Options) > 0:
		idx, err := driver.Select(ctx, SelectConfig{Message: label, Options: optionLabels(field.Options), Help: help})
		if err != nil {
			return nil, false, err
		}
		return field.Options[idx].ID, false, nil
	case field.Type == form.FieldTypeDateTime:
		value, err := driver.Input(ctx, InputConfig{
			Message:   label + " [YYYY-MM-DDTHH:MM]",
			Help:      help,
			Validator: validateDateTime(field.Required),
		})
		if err != nil {
			return nil, false, err
		}
		return value, value == "" && !field.Required, nil
	default:
		value, err := driver.Input(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return nil, false, err
		}
		return value, value == "" && !field.Required, nil
	}
}

func promptCascading(ctx context.Context, driver PromptDriver, field form.Field, label, help string) (any, bool, error) {
	parentIdx, err := driver.Select(ctx, SelectConfig{Message: label, Options: optionLabels(field.Options), Help: help})
	if err != nil {
		return nil, false, err
	}
	parent := field.Options[parentIdx]
	if !parent.HasChildren() {
		return parent.ID, false, nil
	}
	childIdx, err := driver.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("%s > %s", field.Label, parent.Label),
		Options: optionLabels(parent.Children),
	})
	if err != nil {
		return nil, false, err
	}
	return fill.Compound{Parent: parent.ID, Child: parent.Children[childIdx].ID}, false, nil
}

func optionLabels(options []form.ValueOption) []string {
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
	}
	return labels
}

func validateDateTime(required bool) func(string) error {
	return func(value string) error {
		if value == "" && !required {
			return nil
		}
		if _, err := time.Parse("2006-01-02T15:04", value); err != nil {
			return fmt.Errorf("want YYYY-MM-DDTHH:MM, e.g. 2024-03-01T09:30")
		}
		return nil
	}
}
