package common

import (
	"encoding/json"
	"testing"
)

func TestUnwrapCodeBlock(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\": \"b\"}\n```":   `{"a": "b"}`,
		"```\n{\"a\": \"b\"}```":         `{"a": "b"}`,
		"  {\"a\": \"b\"}  ":             `{"a": "b"}`,
		"{\"a\": \"```python\\nx\\n```\"}": "{\"a\": \"```python\\nx\\n```\"}",
	}

	for input, expected := range cases {
		if got := UnwrapCodeBlock(input); got != expected {
			t.Errorf("UnwrapCodeBlock(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestEscapeLLMKey(t *testing.T) {
	JSONResponse := `{
		"deobfuscatedCode": "def main():
	print(\"hello\")\n
main()",
		"other": "keep
as is"
}`

	escaped := EscapeLLMKey(JSONResponse, "deobfuscatedCode")

	var reply struct {
		DeobfuscatedCode string `json:"deobfuscatedCode"`
	}
	if err := json.Unmarshal([]byte(escaped), &reply); err == nil {
		t.Error("Expected the untouched key to keep the JSON invalid")
	}

	escaped = EscapeLLMKey(escaped, "other")
	if err := json.Unmarshal([]byte(escaped), &reply); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	expected := "def main():\n\tprint(\"hello\")\n\nmain()"
	if reply.DeobfuscatedCode != expected {
		t.Errorf("Expected code to be %q, got %q", expected, reply.DeobfuscatedCode)
	}
}

func TestEscapeLLMKey_ValidJSONUnchanged(t *testing.T) {
	valid := `{"explanation": "line one\nline two \"quoted\""}`

	var before, after map[string]string
	if err := json.Unmarshal([]byte(valid), &before); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(EscapeLLMKey(valid, "explanation")), &after); err != nil {
		t.Fatalf("Failed to unmarshal escaped JSON: %v", err)
	}

	if before["explanation"] != after["explanation"] {
		t.Errorf("Expected %q, got %q", before["explanation"], after["explanation"])
	}
}
