package rules

import "testing"

// TestCompareRules verifies the evaluation order used by every store
func TestCompareRules(t *testing.T) {
	tests := []struct {
		name string
		a, b *Rule
		want int
	}{
		{"set first", &Rule{Set: "a", Priority: 9}, &Rule{Set: "b", Priority: 0}, -1},
		{"then priority", &Rule{Set: "a", Priority: 1}, &Rule{Set: "a", Priority: 2}, -1},
		{"then id", &Rule{Set: "a", Priority: 1, ID: "y"}, &Rule{Set: "a", Priority: 1, ID: "x"}, 1},
		{"equal", &Rule{Set: "a", Priority: 1, ID: "x"}, &Rule{Set: "a", Priority: 1, ID: "x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareRules(tt.a, tt.b); got != tt.want {
				t.Errorf("compareRules() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestFactsMap verifies facts are exposed under the input variable
func TestFactsMap(t *testing.T) {
	m := Facts{Input: "track order 12345"}.Map()

	if m[InputVariable] != "track order 12345" {
		t.Errorf("Facts.Map()[%q] = %v, want the input", InputVariable, m[InputVariable])
	}
	if len(m) != 1 {
		t.Errorf("Facts.Map() has %d entries, want 1", len(m))
	}
}
