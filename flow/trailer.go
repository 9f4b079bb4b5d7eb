package flow

import "github.com/bitrise-io/ai-deobfuscator/config"

// TrailerPolicy post-processes the deobfuscated code. The deobfuscation prompt
// leaves a python fence open, the model is assumed to omit the closing
// delimiter, and the policy decides whether it gets appended.
type TrailerPolicy interface {
	Apply(text string) string
}

type appendTrailer struct {
	marker string
}

// AppendTrailer appends marker unconditionally, even if the reply already ends with it
func AppendTrailer(marker string) TrailerPolicy {
	return appendTrailer{marker: marker}
}

func (a appendTrailer) Apply(text string) string {
	return text + a.marker
}

type noTrailer struct{}

// NoTrailer returns the text unchanged
func NoTrailer() TrailerPolicy {
	return noTrailer{}
}

func (noTrailer) Apply(text string) string {
	return text
}

// TrailerFromSettings returns the policy configured in settings
func TrailerFromSettings(settings config.Settings) TrailerPolicy {
	if marker := settings.Trailer(); marker != "" {
		return AppendTrailer(marker)
	}
	return NoTrailer()
}
