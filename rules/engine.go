package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/liamcoop/erpassistant/internal/logger"
)

// costLimit bounds the work a single rule may do during evaluation
const costLimit = 1000000

// Engine compiles rules to CEL programs and evaluates ordered rule sets.
// Safe for concurrent evaluation; compilation takes the write lock.
type Engine struct {
	env      *cel.Env
	store    RuleStore
	cache    RulesCache             // active rules in evaluation order
	programs map[string]cel.Program // ruleID -> compiled program
	mu       sync.RWMutex
}

// NewEngine creates an engine whose rules see the utterance as the string variable `input`
func NewEngine(store RuleStore) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable(InputVariable, cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return NewEngineWithEnv(env, store)
}

// NewEngineWithEnv creates an engine with a custom CEL environment and
// compiles every active rule in the store
func NewEngineWithEnv(env *cel.Env, store RuleStore) (*Engine, error) {
	en := &Engine{
		env:      env,
		store:    store,
		cache:    NewInMemoryRulesCache(DefaultCacheConfig()),
		programs: make(map[string]cel.Program),
	}

	if err := en.CompileAllRules(); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	return en, nil
}

// CompileRule compiles a single rule expression and caches the program.
// The expression must type-check to bool.
func (en *Engine) CompileRule(ruleID, expression string) error {
	prog, err := en.compile(expression)
	if err != nil {
		return err
	}

	en.mu.Lock()
	en.programs[ruleID] = prog
	en.mu.Unlock()

	return nil
}

func (en *Engine) compile(expression string) (cel.Program, error) {
	ast, issues := en.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("compile error: expression must evaluate to bool, got %s", ast.OutputType())
	}

	prog, err := en.env.Program(ast,
		cel.EvalOptions(cel.OptTrackState),
		cel.CostLimit(costLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prog, nil
}

// CompileAllRules compiles all active rules from the store and primes the cache
func (en *Engine) CompileAllRules() error {
	rules, err := en.store.ListActive()
	if err != nil {
		return err
	}

	for _, rule := range rules {
		if err := en.CompileRule(rule.ID, rule.Expression); err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", rule.ID, err)
		}
	}

	en.cache.Set(rules)

	return nil
}

// Reload recompiles the active rules from the store, picking up changes made
// outside the engine, such as direct edits to the rules table. Programs of
// rules that are gone are dropped. On error the previous rules stay in effect.
func (en *Engine) Reload() error {
	rules, err := en.store.ListActive()
	if err != nil {
		return err
	}

	programs := make(map[string]cel.Program, len(rules))
	for _, rule := range rules {
		prog, err := en.compile(rule.Expression)
		if err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", rule.ID, err)
		}
		programs[rule.ID] = prog
	}

	en.mu.Lock()
	en.programs = programs
	en.mu.Unlock()

	en.cache.Set(rules)
	logger.Info("rules reloaded", "active", len(rules))

	return nil
}

// Rule returns a rule by ID, active or not
func (en *Engine) Rule(ruleID string) (*Rule, error) {
	return en.store.Get(ruleID)
}

// Evaluate evaluates a single rule against the provided facts
func (en *Engine) Evaluate(ruleID string, facts map[string]any) (*EvaluationResult, error) {
	rule, err := en.store.Get(ruleID)
	if err != nil {
		return nil, err
	}

	result := en.evaluate(rule, facts)
	return result, result.Error
}

// ActiveRules returns the active rules in evaluation order, from cache when possible
func (en *Engine) ActiveRules() ([]*Rule, error) {
	rules := en.cache.Get()
	if rules != nil {
		return rules, nil
	}

	rules, err := en.store.ListActive()
	if err != nil {
		return nil, err
	}
	en.cache.Set(rules)
	return rules, nil
}

// EvaluateSet evaluates every active rule of a set, in order.
// Evaluation keeps going past rules that fail; their results carry the error.
func (en *Engine) EvaluateSet(set string, facts map[string]any) ([]*EvaluationResult, error) {
	rules, err := en.ActiveRules()
	if err != nil {
		return nil, err
	}

	var results []*EvaluationResult
	for _, rule := range rules {
		if rule.Set != set {
			continue
		}
		results = append(results, en.evaluate(rule, facts))
	}
	return results, nil
}

// FirstMatch evaluates the active rules of a set in priority order and returns
// the first that matches, or nil when none does. A rule that fails to evaluate
// is logged and treated as not matching.
func (en *Engine) FirstMatch(set string, facts map[string]any) (*EvaluationResult, error) {
	rules, err := en.ActiveRules()
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if rule.Set != set {
			continue
		}

		result := en.evaluate(rule, facts)
		if result.Error != nil {
			logger.WarnRuleEvaluation()
			logger.Warn("rule evaluation failed",
				"rule_id", rule.ID,
				"set", set,
				"error", result.Error,
			)
			continue
		}
		if result.Matched {
			return result, nil
		}
	}

	return nil, nil
}

func (en *Engine) evaluate(rule *Rule, facts map[string]any) *EvaluationResult {
	result := &EvaluationResult{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Set:      rule.Set,
		Outcome:  rule.Outcome,
	}

	en.mu.RLock()
	prog, exists := en.programs[rule.ID]
	en.mu.RUnlock()

	if !exists {
		result.Error = fmt.Errorf("rule %s is not compiled", rule.ID)
		return result
	}

	out, details, err := prog.Eval(facts)
	if err != nil {
		result.Error = err
		return result
	}

	if boolVal, ok := out.Value().(bool); ok {
		result.Matched = boolVal
	}
	if details != nil {
		result.Trace = details.State()
	}
	return result
}

// AddRule validates, compiles and stores a new rule.
// The compiled program is dropped again if the store rejects the rule.
func (en *Engine) AddRule(r *Rule) error {
	if _, err := en.store.Get(r.ID); err == nil {
		return fmt.Errorf("rule with ID %s already exists", r.ID)
	}

	if err := en.CompileRule(r.ID, r.Expression); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Add(r); err != nil {
		en.mu.Lock()
		delete(en.programs, r.ID)
		en.mu.Unlock()
		return err
	}

	en.cache.Invalidate()

	return nil
}

// UpdateRule recompiles and stores an existing rule.
// The new program replaces the old one only once the store accepts the rule.
func (en *Engine) UpdateRule(r *Rule) error {
	prog, err := en.compile(r.Expression)
	if err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Update(r); err != nil {
		return err
	}

	en.mu.Lock()
	en.programs[r.ID] = prog
	en.mu.Unlock()

	en.cache.Invalidate()

	return nil
}

// DeleteRule removes a rule from the store and its compiled program
func (en *Engine) DeleteRule(ruleID string) error {
	if err := en.store.Delete(ruleID); err != nil {
		return err
	}

	en.mu.Lock()
	delete(en.programs, ruleID)
	en.mu.Unlock()

	en.cache.Invalidate()

	return nil
}
