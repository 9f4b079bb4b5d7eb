package flow

import (
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/common"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/tidwall/gjson"
)

// Reply holds the validated fields of a model reply
type Reply struct {
	shape  model.Shape
	values map[string]gjson.Result
}

// Text returns a text field as the model produced it, "" if the shape does
// not declare name as text
func (r Reply) Text(name string) string {
	if !r.declares(name, model.TypeText) {
		return ""
	}
	return r.values[name].String()
}

// List returns a text list field, order preserved, nil if the shape does not
// declare name as a text list
func (r Reply) List(name string) []string {
	if !r.declares(name, model.TypeTextList) {
		return nil
	}

	items := r.values[name].Array()
	list := make([]string, 0, len(items))
	for _, item := range items {
		list = append(list, item.String())
	}
	return list
}

func (r Reply) declares(name string, fieldType model.FieldType) bool {
	for _, field := range r.shape.Fields {
		if field.Name == name {
			return field.Type == fieldType
		}
	}
	return false
}

// Validate checks the raw model reply against the declared shape. Only
// transport noise is removed before the check (a wrapping code fence, raw
// control characters inside text values); field values are returned as-is.
func Validate(raw string, shape model.Shape) (Reply, error) {
	body := normalizeReply(raw, shape)

	if !gjson.Valid(body) {
		return Reply{}, &MalformedReplyError{Shape: shape.Name, Reason: "reply is not valid JSON"}
	}

	root := gjson.Parse(body)
	if !root.IsObject() {
		return Reply{}, &MalformedReplyError{Shape: shape.Name, Reason: fmt.Sprintf("reply is %s, not a JSON object", typeName(root))}
	}

	present := map[string]gjson.Result{}
	root.ForEach(func(key, value gjson.Result) bool {
		present[key.String()] = value
		return true
	})

	values := make(map[string]gjson.Result, len(shape.Fields))
	for _, field := range shape.Fields {
		value, ok := present[field.Name]
		if !ok {
			return Reply{}, &MissingFieldError{Shape: shape.Name, Field: field.Name}
		}

		if err := checkType(shape, field, value); err != nil {
			return Reply{}, err
		}
		values[field.Name] = value
	}

	return Reply{shape: shape, values: values}, nil
}

func checkType(shape model.Shape, field model.Field, value gjson.Result) error {
	switch field.Type {
	case model.TypeText:
		if value.Type != gjson.String {
			return &MalformedReplyError{Shape: shape.Name, Field: field.Name, Expected: field.Type, Got: typeName(value)}
		}
	case model.TypeTextList:
		if !value.IsArray() {
			return &MalformedReplyError{Shape: shape.Name, Field: field.Name, Expected: field.Type, Got: typeName(value)}
		}
		for i, item := range value.Array() {
			if item.Type != gjson.String {
				return &MalformedReplyError{
					Shape:    shape.Name,
					Field:    fmt.Sprintf("%s[%d]", field.Name, i),
					Expected: model.TypeText,
					Got:      typeName(item),
				}
			}
		}
	default:
		return &MalformedReplyError{Shape: shape.Name, Field: field.Name, Reason: fmt.Sprintf("unknown field type %q", field.Type)}
	}
	return nil
}

func normalizeReply(raw string, shape model.Shape) string {
	body := common.UnwrapCodeBlock(raw)
	if gjson.Valid(body) {
		return body
	}

	for _, name := range shape.TextFields() {
		body = common.EscapeLLMKey(body, name)
	}
	return body
}

func typeName(value gjson.Result) string {
	switch {
	case value.IsObject():
		return "object"
	case value.IsArray():
		return "array"
	}

	switch value.Type {
	case gjson.String:
		return "text"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	default:
		return "nothing"
	}
}
