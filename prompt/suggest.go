package prompt

import "github.com/bitrise-io/ai-deobfuscator/model"

func GetSuggestPrompt(req model.SuggestRequest) string {
	return `You are an AI expert in deobfuscating Python code.  Based on the following obfuscated Python code, suggest a series of deobfuscation steps that a developer could take to understand and clean the code.

Obfuscated Code:
` + req.ObfuscatedCode + `

Deobfuscation Steps:`
}
