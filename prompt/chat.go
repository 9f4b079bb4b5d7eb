package prompt

import (
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/config"
)

// GetChatSystemPrompt returns the persona for the free-form chat assistant
func GetChatSystemPrompt(settings config.Settings) string {
	basePrompt := getTone(settings) + `
- Answer questions about obfuscation techniques, Python internals and the code the user is working on.
- Keep answers short and practical, use code blocks for code.`
	if settings.Language != "" && settings.Language != "en-US" {
		basePrompt += fmt.Sprintf("\n- Use %s language.", settings.Language)
	}

	return basePrompt
}
