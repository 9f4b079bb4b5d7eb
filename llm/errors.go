package llm

// StatusCode extracts the HTTP status code from a provider error, 0 if there is none
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	if code := openAIStatusCode(err); code != 0 {
		return code
	}
	return anthropicStatusCode(err)
}
