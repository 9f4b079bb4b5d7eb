package common

import "testing"

func TestComplexity(t *testing.T) {
	cases := []struct {
		code     string
		expected int
	}{
		{"", 0},
		{"x = 1", 1},
		{"if a and b:\n    pass\nelif c or d:\n    pass", 5},
		{"for i in range(3):\n    while x:\n        break", 3},
		{"f = lambda x: x if x else 0", 3},
		{"elifant = 1  # identifiers containing keywords do not count", 1},
	}

	for _, c := range cases {
		if got := Complexity(c.code); got != c.expected {
			t.Errorf("Complexity(%q) = %d, expected %d", c.code, got, c.expected)
		}
	}
}
