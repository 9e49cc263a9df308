// Package intent classifies free-text utterances into a closed set of intents,
// resolving product, order and employee references against a dataset.
package intent

import "github.com/liamcoop/erpassistant/dataset"

// Tag names an intent
type Tag string

const (
	Greeting           Tag = "greeting"
	Thanks             Tag = "thanks"
	Help               Tag = "help"
	InventoryGeneral   Tag = "inventory_general"
	InventoryCategory  Tag = "inventory_category"
	InventorySpecific  Tag = "inventory_specific"
	InventoryLowStock  Tag = "inventory_low_stock"
	OrderGeneral       Tag = "order_general"
	OrderSpecific      Tag = "order_specific"
	FinancialSummary   Tag = "financial_summary"
	FinancialMonthly   Tag = "financial_monthly"
	FinancialQuarterly Tag = "financial_quarterly"
	EmployeeGeneral    Tag = "employee_general"
	EmployeeSpecific   Tag = "employee_specific"
	Report             Tag = "report"
	SystemStatus       Tag = "system_status"
	Unknown            Tag = "unknown"
)

// Tags lists every tag
var Tags = []Tag{
	Greeting, Thanks, Help,
	InventoryGeneral, InventoryCategory, InventorySpecific, InventoryLowStock,
	OrderGeneral, OrderSpecific,
	FinancialSummary, FinancialMonthly, FinancialQuarterly,
	EmployeeGeneral, EmployeeSpecific,
	Report, SystemStatus, Unknown,
}

// Valid reports whether t is a known tag
func (t Tag) Valid() bool {
	for _, known := range Tags {
		if t == known {
			return true
		}
	}
	return false
}

// Intent is a classified utterance. At most one payload field is set,
// according to the tag.
type Intent struct {
	Tag      Tag               `json:"tag"`
	Product  *dataset.Product  `json:"product,omitempty"`
	Order    *dataset.Order    `json:"order,omitempty"`
	Employee *dataset.Employee `json:"employee,omitempty"`
	Category dataset.Category  `json:"category,omitempty"`
	Period   string            `json:"period,omitempty"`
}
