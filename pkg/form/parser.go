package form

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Parse decodes a raw portal "customer models" document and builds the
// immutable Form schema from it. The input is never mutated; parsing the
// same document twice yields forms equal in content and order.
func Parse(data []byte) (*Form, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("form: decode document: %w", err)
	}
	return ParseDocument(doc)
}

// ParseDocument builds a Form from an already-decoded portal document. The
// document mixes four field sub-shapes: ordinary fields, template questions
// keyed by a separate question map, autocomplete object pickers whose value
// lists were fetched separately, and cascading selects that split into a
// parent field plus a synthetic dependent subfield.
func ParseDocument(doc map[string]any) (*Form, error) {
	portal := toAnyMap(doc["portal"])
	if portal == nil || portal["id"] == nil {
		return nil, &ParseError{Path: "portal.id"}
	}
	reqCreate := toAnyMap(doc["reqCreate"])
	if reqCreate == nil || reqCreate["id"] == nil {
		return nil, &ParseError{Path: "reqCreate.id"}
	}
	formMeta := toAnyMap(reqCreate["form"])
	if formMeta == nil || formMeta["name"] == nil {
		return nil, &ParseError{Path: "reqCreate.form.name"}
	}
	rawFields, ok := reqCreate["fields"].([]any)
	if !ok {
		return nil, &ParseError{Path: "reqCreate.fields"}
	}

	out := &Form{
		PortalID:          toString(portal["id"]),
		ServiceDeskID:     toString(portal["serviceDeskId"]),
		RequestTypeID:     toString(reqCreate["id"]),
		ProjectID:         toString(portal["projectId"]),
		PortalName:        toString(portal["name"]),
		PortalDescription: toString(portal["description"]),
		Name:              toString(formMeta["name"]),
		DescriptionHTML:   toString(formMeta["descriptionHtml"]),
		AtlToken:          toString(doc["xsrfToken"]),
	}

	// Ordinary fields first; fields backed by a remote autocomplete lookup
	// are appended after the template questions.
	var fields []Field
	for _, raw := range rawFields {
		entry := toAnyMap(raw)
		if entry == nil {
			continue
		}
		if toString(entry["autoCompleteUrl"]) != "" {
			continue
		}
		fields = append(fields, parseField(entry)...)
	}

	if proforma := toAnyMap(reqCreate["proformaTemplateForm"]); proforma != nil {
		fields = append(fields, parseTemplateFields(proforma)...)

		out.UpdatedAt = toString(proforma["updated"])
		settings := toAnyMap(toAnyMap(proforma["design"])["settings"])
		if id, ok := toInt(settings["templateId"]); ok {
			out.TemplateID = &id
		}
		out.TemplateFormUUID = toString(settings["templateFormUuid"])
	}

	fields = append(fields, parseAutocompleteFields(reqCreate)...)

	out.Fields = fields
	return out, nil
}

func parseField(entry map[string]any) []Field {
	field := Field{
		Type:            FieldType(toString(entry["fieldType"])),
		ID:              toString(entry["fieldId"]),
		ConfigID:        toString(entry["fieldConfigId"]),
		Label:           toString(entry["label"]),
		Description:     toString(entry["description"]),
		DescriptionHTML: toString(entry["descriptionHtml"]),
		Required:        toBool(entry["required"]),
		Displayed:       toBool(entry["displayed"]),
		PresetValues:    toAnySlice(entry["presetValues"]),
		Options:         parseValues(entry["values"]),
		RendererType:    toString(entry["rendererType"]),
		AutoCompleteURL: toString(entry["autoCompleteUrl"]),
	}

	if field.Type == FieldTypeCascadingSelect {
		return splitCascadingField(field)
	}
	return []Field{field}
}

// splitCascadingField materialises the dependent subfield of a cascading
// select. A cascading field without options stays a lone field: with no
// vocabulary there is nothing a child value could resolve against.
func splitCascadingField(parent Field) []Field {
	if len(parent.Options) == 0 {
		return []Field{parent}
	}
	sub := Field{
		Type:            parent.Type,
		ID:              parent.ID + ":1",
		ConfigID:        parent.ConfigID,
		Label:           parent.Label + " (Subfield)",
		Description:     parent.Description,
		DescriptionHTML: parent.DescriptionHTML,
		Required:        parent.Required,
		Displayed:       parent.Displayed,
		PresetValues:    parent.PresetValues,
		RendererType:    parent.RendererType,
		DependsOn:       parent.ID,
	}
	return []Field{parent, sub}
}

func parseValues(raw any) []ValueOption {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]ValueOption, 0, len(list))
	for _, item := range list {
		entry := toAnyMap(item)
		if entry == nil {
			continue
		}
		out = append(out, ValueOption{
			ID:       toString(entry["value"]),
			Label:    toString(entry["label"]),
			Selected: toBool(entry["selected"]),
			Children: parseValues(entry["children"]),
		})
	}
	return out
}

// parseTemplateFields turns the template design questions into fields. The
// question map carries no ordering, so questions are emitted in sorted key
// order to keep parsing deterministic.
func parseTemplateFields(proforma map[string]any) []Field {
	questions := toAnyMap(toAnyMap(proforma["design"])["questions"])
	if len(questions) == 0 {
		return nil
	}
	optionsByField := toAnyMap(toAnyMap(proforma["proformaFieldOptions"])["fields"])

	keys := make([]string, 0, len(questions))
	for key := range questions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		question := toAnyMap(questions[key])
		if question == nil {
			continue
		}
		fieldID := toString(question["jiraField"])
		if fieldID == "" {
			fieldID = key
		}
		fields = append(fields, Field{
			Type:               FieldType(toString(question["type"])),
			ID:                 fieldID,
			Label:              toString(question["label"]),
			Description:        toString(question["description"]),
			Required:           toBool(toAnyMap(question["validation"])["rq"]),
			Displayed:          true,
			Options:            parseTemplateOptions(optionsByField[fieldID]),
			IsProforma:         true,
			TemplateQuestionID: key,
		})
	}
	return fields
}

func parseTemplateOptions(raw any) []ValueOption {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]ValueOption, 0, len(list))
	for _, item := range list {
		entry := toAnyMap(item)
		if entry == nil {
			continue
		}
		out = append(out, ValueOption{
			ID:    toString(entry["id"]),
			Label: toString(entry["label"]),
		})
	}
	return out
}

func parseAutocompleteFields(reqCreate map[string]any) []Field {
	rawFields, _ := reqCreate["fields"].([]any)
	options, _ := reqCreate["autocompleteOptions"].([]any)

	var fields []Field
	for _, raw := range rawFields {
		entry := toAnyMap(raw)
		if entry == nil {
			continue
		}
		if toString(entry["autoCompleteUrl"]) == "" {
			continue
		}
		if FieldType(toString(entry["fieldType"])) != FieldTypeObjectPicker {
			continue
		}
		fieldID := toString(entry["fieldId"])
		fields = append(fields, Field{
			Type:            FieldTypeObjectPicker,
			ID:              fieldID,
			Label:           toString(entry["label"]),
			Description:     toString(entry["description"]),
			Required:        toBool(entry["required"]),
			Displayed:       toBool(entry["displayed"]),
			PresetValues:    toAnySlice(entry["presetValues"]),
			AutoCompleteURL: toString(entry["autoCompleteUrl"]),
			Options:         parseAutocompleteOptions(options, fieldID),
		})
	}
	return fields
}

// parseAutocompleteOptions maps the pre-fetched result set of one object
// picker into value options. A field with no fetched result set yields no
// options rather than failing: the lookup is best-effort upstream.
func parseAutocompleteOptions(options []any, fieldID string) []ValueOption {
	var results []any
	for _, raw := range options {
		entry := toAnyMap(raw)
		if entry == nil || toString(entry["fieldId"]) != fieldID {
			continue
		}
		results, _ = entry["results"].([]any)
		break
	}
	if len(results) == 0 {
		return nil
	}

	out := make([]ValueOption, 0, len(results))
	for _, raw := range results {
		entry := toAnyMap(raw)
		if entry == nil {
			continue
		}
		extra := map[string]any{
			"workspaceId": toString(entry["workspaceId"]),
			"objectKey":   toString(entry["objectKey"]),
		}
		if objectType := toAnyMap(entry["objectType"]); objectType != nil {
			extra["objectType"] = map[string]any{
				"objectTypeId": toString(objectType["objectTypeId"]),
				"id":           toString(objectType["id"]),
				"name":         toString(objectType["name"]),
				"description":  toString(objectType["description"]),
			}
		}
		if attrs, _ := entry["attributes"].([]any); len(attrs) > 0 {
			if attr := toAnyMap(attrs[0]); attr != nil {
				extra["objectTypeAttributeId"] = toString(attr["objectTypeAttributeId"])
				if typeAttr := toAnyMap(attr["objectTypeAttribute"]); typeAttr != nil {
					extra["objectTypeAttributeName"] = toString(typeAttr["name"])
					extra["objectTypeAttributeType"] = toString(typeAttr["type"])
					extra["objectTypeAttributeDescription"] = toString(typeAttr["description"])
				}
				extra["objectTypeAttributeValues"] = toAnySlice(attr["objectAttributeValues"])
			}
		}
		out = append(out, ValueOption{
			ID:    toString(entry["objectId"]),
			Label: toString(entry["label"]),
			Extra: extra,
		})
	}
	return out
}

func toAnyMap(value any) map[string]any {
	mapped, _ := value.(map[string]any)
	return mapped
}

func toAnySlice(value any) []any {
	list, _ := value.([]any)
	return list
}

func toBool(value any) bool {
	b, _ := value.(bool)
	return b
}

// toString renders scalar JSON values as strings. Identifiers arrive as
// either strings or numbers depending on the endpoint, so numbers are
// formatted without a decimal point when integral.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
