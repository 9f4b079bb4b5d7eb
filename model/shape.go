package model

// FieldType is the declared JSON type of a reply field
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextList FieldType = "text_list"
)

// Field is one named, typed field of a reply shape
type Field struct {
	Name        string
	Type        FieldType
	Description string
}

// Shape declares the set of fields a flow expects back from the model.
// Every declared field is required.
type Shape struct {
	Name   string
	Fields []Field
}

// Required returns the names of all declared fields in declaration order
func (s Shape) Required() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// TextFields returns the names of the fields declared as plain text
func (s Shape) TextFields() []string {
	names := []string{}
	for _, f := range s.Fields {
		if f.Type == TypeText {
			names = append(names, f.Name)
		}
	}
	return names
}

const (
	FieldDeobfuscatedCode = "deobfuscatedCode"
	FieldExplanation      = "explanation"
	FieldSuggestedSteps   = "suggestedSteps"
)

var (
	DeobfuscateShape = Shape{
		Name: "deobfuscate_code",
		Fields: []Field{
			{Name: FieldDeobfuscatedCode, Type: TypeText, Description: "The deobfuscated Python code."},
		},
	}

	ExplainShape = Shape{
		Name: "explain_code_context",
		Fields: []Field{
			{Name: FieldExplanation, Type: TypeText, Description: "The explanation of the code section."},
		},
	}

	SuggestShape = Shape{
		Name: "suggest_deobfuscation_steps",
		Fields: []Field{
			{Name: FieldSuggestedSteps, Type: TypeTextList, Description: "An array of suggested deobfuscation steps."},
		},
	}
)
