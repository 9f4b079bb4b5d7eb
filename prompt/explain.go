package prompt

import (
	"strings"

	"github.com/bitrise-io/ai-deobfuscator/model"
)

func GetExplainPrompt(req model.ExplainRequest) string {
	prompt := `You are an expert software developer specializing in reverse engineering and deobfuscating code.

You will be provided a section of code, its programming language, and optionally, some known context.

Your task is to explain the purpose and functionality of the code section in plain, understandable language, even if the code is obfuscated.

Programming Language: ` + req.ProgrammingLanguage + `
Code Section:
` + "```" + strings.ToLower(req.ProgrammingLanguage) + `
` + req.CodeSection + `
` + "```" + `

`
	if req.HasContext() {
		prompt += GetKnownContextPrompt(req.KnownContext) + "\n"
	}

	return prompt + `
Explanation:`
}

func GetKnownContextPrompt(knownContext string) string {
	return `Known Context: ` + knownContext
}
