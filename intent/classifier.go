package intent

import (
	"fmt"
	"strings"

	"github.com/liamcoop/erpassistant/dataset"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/rules"
)

// Explanation is a classification together with the rules that produced it,
// in the order they matched
type Explanation struct {
	Intent       Intent   `json:"intent"`
	MatchedRules []string `json:"matchedRules"`
}

// query is one classification in progress
type query struct {
	text  string // lower-cased utterance
	facts map[string]any
	path  []string
}

// resolver turns a family match into a concrete intent
type resolver func(c *Classifier, q *query) Intent

var resolvers = map[string]resolver{
	FamilyInventory: (*Classifier).resolveInventory,
	FamilyOrder:     (*Classifier).resolveOrder,
	FamilyFinancial: (*Classifier).resolveFinancial,
	FamilyEmployee:  (*Classifier).resolveEmployee,
}

// Classifier maps utterances to intents by running the rule cascade and
// resolving entity references. Classification never fails: anything the
// cascade does not recognise is Unknown.
type Classifier struct {
	engine *rules.Engine
	lookup *Lookup
}

// NewClassifier creates a classifier over an engine holding the cascade rules
func NewClassifier(engine *rules.Engine, data *dataset.Dataset) *Classifier {
	return &Classifier{
		engine: engine,
		lookup: NewLookup(data),
	}
}

// NewDefaultClassifier creates a classifier running DefaultRules from memory
func NewDefaultClassifier(data *dataset.Dataset) (*Classifier, error) {
	store, err := rules.NewInMemoryRuleStoreWith(DefaultRules())
	if err != nil {
		return nil, fmt.Errorf("failed to load default rules: %w", err)
	}

	engine, err := rules.NewEngine(store)
	if err != nil {
		return nil, err
	}

	return NewClassifier(engine, data), nil
}

// Engine returns the rule engine backing the classifier
func (c *Classifier) Engine() *rules.Engine {
	return c.engine
}

// Lookup returns the entity lookup used by the classifier
func (c *Classifier) Lookup() *Lookup {
	return c.lookup
}

// Classify returns the intent of text
func (c *Classifier) Classify(text string) Intent {
	return c.Explain(text).Intent
}

// Explain classifies text and reports the matched rules
func (c *Classifier) Explain(text string) Explanation {
	lower := strings.ToLower(text)
	q := &query{
		text:  lower,
		facts: rules.Facts{Input: lower}.Map(),
	}

	in := c.classify(q)
	return Explanation{Intent: in, MatchedRules: q.path}
}

func (c *Classifier) classify(q *query) Intent {
	outcome, ok := c.match(SetIntent, q)
	if !ok {
		return Intent{Tag: Unknown}
	}

	if resolve, ok := resolvers[outcome]; ok {
		return resolve(c, q)
	}

	if tag := Tag(outcome); tag.Valid() {
		return Intent{Tag: tag}
	}

	logger.Warn("rule outcome is not an intent", "outcome", outcome)
	return Intent{Tag: Unknown}
}

// match returns the outcome of the first matching rule of set
func (c *Classifier) match(set string, q *query) (string, bool) {
	result, err := c.engine.FirstMatch(set, q.facts)
	if err != nil {
		logger.Error("rule set evaluation failed", "set", set, "error", err)
		return "", false
	}
	if result == nil {
		return "", false
	}

	q.path = append(q.path, result.RuleID)
	return result.Outcome, true
}

func (c *Classifier) resolveInventory(q *query) Intent {
	if p, ok := c.lookup.FindProduct(q.text); ok {
		return Intent{Tag: InventorySpecific, Product: &p}
	}

	if outcome, ok := c.match(SetInventoryCategory, q); ok {
		return Intent{Tag: InventoryCategory, Category: dataset.Category(outcome)}
	}

	if _, ok := c.match(SetInventoryLowStock, q); ok {
		return Intent{Tag: InventoryLowStock}
	}

	return Intent{Tag: InventoryGeneral}
}

func (c *Classifier) resolveOrder(q *query) Intent {
	if o, ok := c.lookup.FindOrder(q.text); ok {
		return Intent{Tag: OrderSpecific, Order: &o}
	}
	return Intent{Tag: OrderGeneral}
}

func (c *Classifier) resolveFinancial(q *query) Intent {
	outcome, ok := c.match(SetFinancialPeriod, q)
	switch {
	case !ok:
		return Intent{Tag: FinancialSummary}
	case outcome == OutcomeQuarterly:
		return Intent{Tag: FinancialQuarterly}
	default:
		return Intent{Tag: FinancialMonthly, Period: outcome}
	}
}

func (c *Classifier) resolveEmployee(q *query) Intent {
	if e, ok := c.lookup.FindEmployee(q.text); ok {
		return Intent{Tag: EmployeeSpecific, Employee: &e}
	}
	return Intent{Tag: EmployeeGeneral}
}
