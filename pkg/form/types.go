package form

// FieldType is the closed set of field kinds a customer request form can
// carry. The raw values mirror the type tags the portal API uses on the wire
// so parsed forms stay recognisable next to the source JSON.
type FieldType string

const (
	FieldTypeText            FieldType = "text"
	FieldTypeTextArea        FieldType = "textarea"
	FieldTypeSelect          FieldType = "select"
	FieldTypeRadio           FieldType = "radiobuttons"
	FieldTypeMultiSelect     FieldType = "multiselect"
	FieldTypeCascadingSelect FieldType = "cascadingselect"
	FieldTypeObjectPicker    FieldType = "cmdbobjectpicker"
	FieldTypeADF             FieldType = "adf"

	// Template question kinds. Template-mapped answers travel inside the
	// proformaFormData sub-document rather than as flat payload keys.
	FieldTypeDateTime  FieldType = "dt"
	FieldTypeRichText  FieldType = "rt"
	FieldTypeParagraph FieldType = "cd"
	FieldTypeChoice    FieldType = "cl"
	FieldTypePlainText FieldType = "pt"
)

// HasOptions reports whether values of this kind are resolved against an
// option vocabulary instead of passing through verbatim.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeMultiSelect,
		FieldTypeCascadingSelect, FieldTypeChoice:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the kind is a flat (non-cascading) choice.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeMultiSelect, FieldTypeChoice:
		return true
	default:
		return false
	}
}

// IsRichText reports whether answers of this kind are wrapped into an ADF
// paragraph when the payload is built.
func (t FieldType) IsRichText() bool {
	return t == FieldTypeRichText || t == FieldTypeParagraph
}

// ValueOption is one selectable value of a field. Cascading selects nest a
// second level under Children; option trees never go deeper than that.
type ValueOption struct {
	ID       string         `json:"value"`
	Label    string         `json:"label"`
	Selected bool           `json:"selected,omitempty"`
	Children []ValueOption  `json:"children,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// HasChildren reports whether the option carries a nested value list.
func (v ValueOption) HasChildren() bool {
	return len(v.Children) > 0
}

// Field is a single form field. Cascading selects with options materialise a
// second, synthetic Field whose ID is "<parent>:1" and whose DependsOn names
// the parent; the remote service addresses the child value by that literal
// key convention.
type Field struct {
	Type            FieldType     `json:"fieldType"`
	ID              string        `json:"fieldId"`
	ConfigID        string        `json:"fieldConfigId,omitempty"`
	Label           string        `json:"label"`
	Description     string        `json:"description,omitempty"`
	DescriptionHTML string        `json:"descriptionHtml,omitempty"`
	Required        bool          `json:"required"`
	Displayed       bool          `json:"displayed"`
	PresetValues    []any         `json:"presetValues,omitempty"`
	Options         []ValueOption `json:"values,omitempty"`
	RendererType    string        `json:"rendererType,omitempty"`
	AutoCompleteURL string        `json:"autoCompleteUrl,omitempty"`
	DependsOn       string        `json:"dependsOn,omitempty"`

	// Template-mapped ("proforma") fields route their answer into the
	// nested proformaFormData document keyed by TemplateQuestionID.
	IsProforma         bool   `json:"isProforma,omitempty"`
	TemplateQuestionID string `json:"templateQuestionId,omitempty"`
}

// HasAutocomplete reports whether the field's vocabulary comes from a remote
// lookup rather than the embedded schema.
func (f Field) HasAutocomplete() bool {
	return f.AutoCompleteURL != ""
}

// IsDependent reports whether the field is a synthetic subfield of another.
func (f Field) IsDependent() bool {
	return f.DependsOn != ""
}

// Form is the parsed schema of one request type within a portal. It is
// immutable once built; concurrent readers need no coordination.
type Form struct {
	PortalID          string `json:"portalId"`
	ServiceDeskID     string `json:"serviceDeskId"`
	RequestTypeID     string `json:"requestTypeId"`
	ProjectID         string `json:"projectId"`
	PortalName        string `json:"portalName"`
	PortalDescription string `json:"portalDescription,omitempty"`
	Name              string `json:"name"`
	DescriptionHTML   string `json:"descriptionHtml,omitempty"`

	Fields []Field `json:"fields"`

	// Template metadata, present only when the form carries template-mapped
	// fields.
	UpdatedAt        string `json:"updatedAt,omitempty"`
	TemplateID       *int   `json:"templateId,omitempty"`
	TemplateFormUUID string `json:"templateFormUuid,omitempty"`

	// AtlToken is the anti-forgery token passed through to the submission
	// boundary; the pipeline never interprets it.
	AtlToken string `json:"atlToken,omitempty"`
}
