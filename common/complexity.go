package common

import "regexp"

var branchPattern = regexp.MustCompile(`\b(if|elif|for|while|except|and|or|lambda|case)\b`)

// Complexity returns a naive complexity score of Python source: one plus the
// number of branching keywords. It does not parse the code, keywords inside
// strings and comments are counted too.
func Complexity(code string) int {
	if code == "" {
		return 0
	}
	return 1 + len(branchPattern.FindAllStringIndex(code, -1))
}
