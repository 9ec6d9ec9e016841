package model

// FieldType is the closed enumeration of question kinds a form may contain.
type FieldType string

const (
	FieldTypeShortText   FieldType = "short_text"
	FieldTypeLongText    FieldType = "long_text"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeTime        FieldType = "time"
	FieldTypeDropdown    FieldType = "dropdown"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
	FieldTypeRating      FieldType = "rating"
	FieldTypeMatrix      FieldType = "matrix"
	FieldTypeSignature   FieldType = "signature"
	FieldTypeImageChoice FieldType = "image_choice"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeShortText:   {},
	FieldTypeLongText:    {},
	FieldTypeEmail:       {},
	FieldTypePhone:       {},
	FieldTypeNumber:      {},
	FieldTypeDate:        {},
	FieldTypeTime:        {},
	FieldTypeDropdown:    {},
	FieldTypeRadio:       {},
	FieldTypeCheckbox:    {},
	FieldTypeFile:        {},
	FieldTypeRating:      {},
	FieldTypeMatrix:      {},
	FieldTypeSignature:   {},
	FieldTypeImageChoice: {},
}

// Known reports whether the type belongs to the closed set.
func (t FieldType) Known() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// Operator enumerates the comparison operators supported by conditional
// visibility rules.
type Operator string

const (
	OperatorEquals    Operator = "equals"
	OperatorNotEquals Operator = "not_equals"
	OperatorContains  Operator = "contains"
)

// LogicRule is the single-hop conditional visibility record: show the owning
// field when the referenced field's answer compares against Value.
type LogicRule struct {
	ShowWhenFieldID string   `json:"showWhenFieldId" yaml:"showWhenFieldId"`
	Operator        Operator `json:"operator" yaml:"operator"`
	Value           Scalar   `json:"value" yaml:"value"`
}

// Validation captures the optional per-field constraint record. Min and Max
// are scalar bounds interpreted per field type: parsed numbers for number
// fields, calendar dates for date fields.
type Validation struct {
	Required            bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength           *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength           *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min                 Scalar `json:"min,omitempty" yaml:"min,omitempty"`
	Max                 Scalar `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern             string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PatternErrorMessage string `json:"patternErrorMessage,omitempty" yaml:"patternErrorMessage,omitempty"`
	CustomMessage       string `json:"customMessage,omitempty" yaml:"customMessage,omitempty"`
}

// ImageOption is one selectable entry of an image_choice field.
type ImageOption struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Field models a single question inside a form definition. Options,
// MatrixRows and MatrixColumns preserve insertion order; Order is the 0-based
// position within the form and stays contiguous through mutations.
type Field struct {
	ID            string        `json:"id" yaml:"id"`
	Type          FieldType     `json:"type" yaml:"type"`
	Label         string        `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder   string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required      bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Options       []string      `json:"options,omitempty" yaml:"options,omitempty"`
	ImageOptions  []ImageOption `json:"imageOptions,omitempty" yaml:"imageOptions,omitempty"`
	MatrixRows    []string      `json:"matrixRows,omitempty" yaml:"matrixRows,omitempty"`
	MatrixColumns []string      `json:"matrixColumns,omitempty" yaml:"matrixColumns,omitempty"`
	Validation    *Validation   `json:"validation,omitempty" yaml:"validation,omitempty"`
	Logic         *LogicRule    `json:"logic,omitempty" yaml:"logic,omitempty"`
	Order         int           `json:"order" yaml:"order"`
}

// IsRequired reports whether the field demands a non-empty answer, honouring
// both the top-level flag and the validation record.
func (f Field) IsRequired() bool {
	if f.Required {
		return true
	}
	return f.Validation != nil && f.Validation.Required
}

// Settings carries the form-level behaviour toggles. QuestionsPerPage of zero
// means the form renders unpaginated.
type Settings struct {
	QuestionsPerPage    int    `json:"questionsPerPage,omitempty" yaml:"questionsPerPage,omitempty"`
	ConfirmationMessage string `json:"confirmationMessage,omitempty" yaml:"confirmationMessage,omitempty"`
	SendCopy            bool   `json:"sendCopy,omitempty" yaml:"sendCopy,omitempty"`
}

// Form is an ordered sequence of fields plus settings. The response engine
// treats a Form as immutable for the duration of one fill session.
type Form struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field  `json:"fields" yaml:"fields"`
	Settings    Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Paginated reports whether the form renders in pages.
func (f Form) Paginated() bool {
	return f.Settings.QuestionsPerPage > 0
}

// FieldByID looks up a field definition.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// Answers maps field IDs to the current value entered for that field. The
// value shape depends on the field type: strings for text inputs, []string
// for checkbox selections, map[string]string for matrix rows, and an upload
// handle for file fields.
type Answers map[string]any

// Value reads an answer, distinguishing "absent" from stored nil.
func (a Answers) Value(id string) (any, bool) {
	if a == nil {
		return nil, false
	}
	value, ok := a[id]
	return value, ok
}

// Clone returns a shallow copy of the answer map.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
