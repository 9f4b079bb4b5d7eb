package prompt

import "github.com/bitrise-io/ai-deobfuscator/model"

// GetDeobfuscatePrompt renders the deobfuscation template. The reply is
// expected to continue the open python fence, which is why it is never closed.
func GetDeobfuscatePrompt(req model.DeobfuscateRequest) string {
	return `You are an expert AI in deobfuscating Python code.  Based on the following obfuscated Python code, you will deobfuscate it to be human readable. Ensure that the deobfuscated code is fully functional and equivalent to the obfuscated code. You will return only valid and runnable python code.
  You should add comments explaining what the code is doing.

Obfuscated Code:
` + "```python" + `
` + req.ObfuscatedCode + `
` + "```" + `

Deobfuscated Code:
` + "```python"
}
