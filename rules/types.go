package rules

import (
	"cmp"
	"time"
)

// Rule is a single CEL predicate inside an ordered rule set.
// Rules of a set are evaluated in ascending Priority; the first match wins.
type Rule struct {
	ID         string    `json:"id"`
	Set        string    `json:"set"`
	Name       string    `json:"name"`
	Expression string    `json:"expression"`
	Priority   int       `json:"priority"`
	Outcome    string    `json:"outcome"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EvaluationResult contains the outcome of evaluating a rule
type EvaluationResult struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Set      string `json:"set"`
	Outcome  string `json:"outcome"`
	Matched  bool   `json:"matched"`
	Error    error  `json:"-"`
	Trace    any    `json:"-"` // CEL evaluation state (optional)
}

// compareRules orders rules by set, then priority, then id
func compareRules(a, b *Rule) int {
	if c := cmp.Compare(a.Set, b.Set); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
