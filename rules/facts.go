package rules

// InputVariable is the CEL variable holding the normalized utterance
const InputVariable = "input"

// Facts is the activation every rule is evaluated against
type Facts struct {
	// Input is the lower-cased utterance
	Input string `json:"input"`
}

// Map converts the facts into a CEL activation
func (f Facts) Map() map[string]any {
	return map[string]any{
		InputVariable: f.Input,
	}
}
