package template

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
)

type Category string

const (
	CategoryRH         Category = "RH"
	CategoryFiscal     Category = "Fiscal"
	CategoryContabil   Category = "Contábil"
	CategorySocietario Category = "Societário"
	CategoryOutro      Category = "Outro"
)

type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Description string    `json:"description,omitempty"`
	Step        int       `json:"step,omitempty"`
}

type FileConfig struct {
	AcceptedTypes string `json:"accepted_types"`
	IsRequired    bool   `json:"is_required"`
}

type Step struct {
	Title string `json:"title"`
}

// Template declares the shape of a portal document kind: its form fields,
// whether a file attachment is mandatory, and the ordered step list for
// multi-step submissions. Templates carry no lifecycle rules themselves.
type Template struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Category   Category    `json:"category"`
	Fields     []Field     `json:"fields,omitempty"`
	FileConfig *FileConfig `json:"file_config,omitempty"`
	Steps      []Step      `json:"steps,omitempty"`
}

// TotalSteps returns the number of declared submission steps, or 0 for
// single-shot templates.
func (t *Template) TotalSteps() int {
	return len(t.Steps)
}
