package intent

import (
	"fmt"

	"github.com/liamcoop/erpassistant/dataset"
	"github.com/liamcoop/erpassistant/rules"
)

// Rule sets of the classification cascade
const (
	SetIntent            = "intent"
	SetInventoryCategory = "inventory.category"
	SetInventoryLowStock = "inventory.low_stock"
	SetFinancialPeriod   = "financial.period"
)

// Outcomes of the intent set that need a resolver. Every other outcome of
// that set is a Tag.
const (
	FamilyInventory = "inventory"
	FamilyOrder     = "order"
	FamilyFinancial = "financial"
	FamilyEmployee  = "employee"
)

// Outcomes of the sub-sets
const (
	OutcomeLowStock  = "low_stock"
	OutcomeQuarterly = "quarterly"
)

// matches builds a CEL predicate testing the lower-cased utterance
func matches(pattern string) string {
	return fmt.Sprintf("input.matches(r'%s')", pattern)
}

// DefaultRules returns the classification cascade. Priorities order the
// rules within each set and must not be reshuffled: keyword families overlap,
// and the earlier family wins.
func DefaultRules() []*rules.Rule {
	rule := func(set, name, pattern string, priority int, outcome string) *rules.Rule {
		return &rules.Rule{
			ID:         set + "." + name,
			Set:        set,
			Name:       name,
			Expression: matches(pattern),
			Priority:   priority,
			Outcome:    outcome,
			Active:     true,
		}
	}

	return []*rules.Rule{
		rule(SetIntent, "greeting", `^(hi|hello|hey|good morning|good afternoon|good evening)`, 10, string(Greeting)),
		rule(SetIntent, "thanks", `(thank|thanks|appreciate)`, 20, string(Thanks)),
		rule(SetIntent, "help", `(help|assist|what can you|capabilities|features)`, 30, string(Help)),
		rule(SetIntent, "inventory", `(inventory|stock|product|item|warehouse|reorder|supply)`, 40, FamilyInventory),
		rule(SetIntent, "order", `(order|track|shipment|delivery|customer)`, 50, FamilyOrder),
		rule(SetIntent, "financial", `(financial|finance|revenue|expense|profit|budget|money|sales|income)`, 60, FamilyFinancial),
		rule(SetIntent, "employee", `(employee|staff|worker|hr|personnel|team member)`, 70, FamilyEmployee),
		rule(SetIntent, "report", `(report|analytics|data|summary|generate|create report)`, 80, string(Report)),
		rule(SetIntent, "system_status", `(system|status|online|health|performance)`, 90, string(SystemStatus)),

		rule(SetInventoryCategory, "laptop", `(laptop|computer)`, 10, string(dataset.CategoryLaptop)),
		rule(SetInventoryCategory, "furniture", `(furniture|chair|desk)`, 20, string(dataset.CategoryFurniture)),
		rule(SetInventoryCategory, "accessories", `(accessories|mouse|keyboard)`, 30, string(dataset.CategoryAccessories)),

		rule(SetInventoryLowStock, "low_stock", `(low stock|running low|reorder|need order)`, 10, OutcomeLowStock),

		rule(SetFinancialPeriod, "october", `(october|oct|current month|this month)`, 10, dataset.PeriodOctober2025),
		rule(SetFinancialPeriod, "september", `(september|sept|last month)`, 20, dataset.PeriodSeptember2025),
		rule(SetFinancialPeriod, "quarterly", `(quarter|q3|quarterly)`, 30, OutcomeQuarterly),
	}
}
