package common

import (
	"fmt"
	"regexp"
	"strings"
)

var codeBlockPattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n(.*?)\n?```$")

// UnwrapCodeBlock removes a single code fence wrapped around the whole reply,
// models do it even when asked for bare JSON
func UnwrapCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if submatches := codeBlockPattern.FindStringSubmatch(s); len(submatches) == 2 {
		return strings.TrimSpace(submatches[1])
	}
	return s
}

var controlCharEscaper = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeLLMKey escapes raw control characters inside the string value of key.
// The LLM can respond with invalid JSON (new lines and tabs) in long text
// values such as code. Already escaped sequences are left untouched, so the
// decoded value is exactly the text the model produced.
func EscapeLLMKey(jsonStr, key string) string {
	pattern := fmt.Sprintf(`"%s":\s*"((?:\\.|[^"\\])*)"`, regexp.QuoteMeta(key))
	re := regexp.MustCompile(pattern)

	return re.ReplaceAllStringFunc(jsonStr, func(match string) string {
		submatches := re.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		return fmt.Sprintf(`"%s": "%s"`, key, controlCharEscaper.Replace(submatches[1]))
	})
}
