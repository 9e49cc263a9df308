package dataset

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products by the prefix of their SKU
type Category string

const (
	CategoryLaptop      Category = "laptop"
	CategoryFurniture   Category = "furniture"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in display order
var Categories = []Category{CategoryLaptop, CategoryFurniture, CategoryAccessories}

var categoryPrefixes = map[Category]string{
	CategoryLaptop:      "LAP",
	CategoryFurniture:   "FUR",
	CategoryAccessories: "ACC",
}

// Prefix returns the SKU prefix that marks membership in the category
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

// Title returns the category name with its first letter upper-cased
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Product is a stocked item
type Product struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Supplier     string          `json:"supplier"`
	Location     string          `json:"location"`
	ReorderLevel int             `json:"reorder_level"`
}

// IsLowStock reports whether quantity is strictly below the reorder level
func (p Product) IsLowStock() bool {
	return p.Quantity < p.ReorderLevel
}

// ReorderQuantity is the number of units that brings stock to twice the reorder level
func (p Product) ReorderQuantity() int {
	return p.ReorderLevel*2 - p.Quantity
}

// Category derives the category from the SKU prefix
func (p Product) Category() (Category, bool) {
	for _, c := range Categories {
		if strings.HasPrefix(p.SKU, c.Prefix()) {
			return c, true
		}
	}
	return "", false
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusPendingApproval OrderStatus = "Pending Approval"
	StatusProcessing      OrderStatus = "Processing"
	StatusInTransit       OrderStatus = "In Transit"
	StatusDelivered       OrderStatus = "Delivered"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingApproval, StatusProcessing, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// Order is a customer order
type Order struct {
	ID           string          `json:"order_id"`
	Customer     string          `json:"customer"`
	Status       OrderStatus     `json:"status"`
	Items        int             `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
	DeliveryDate time.Time       `json:"delivery_date"`
}

// Financial period keys
const (
	PeriodOctober2025   = "october_2025"
	PeriodSeptember2025 = "september_2025"
	PeriodQ32025        = "q3_2025"
)

// FinancialPeriod holds the figures of one reporting period.
// Growth is only set for periods that report it.
type FinancialPeriod struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Margin   float64         `json:"margin"`
	Growth   *float64        `json:"growth,omitempty"`
}

// Employee is a member of staff
type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	LeaveBalance int    `json:"leave_balance"`
}

// Dataset is the read-only business data the assistant answers from.
// Slice order is significant: entity lookups return the first match.
type Dataset struct {
	Products  []Product                  `json:"products"`
	Orders    []Order                    `json:"orders"`
	Periods   map[string]FinancialPeriod `json:"periods"`
	Employees []Employee                 `json:"employees"`
}

// ProductsInCategory returns the products whose SKU carries the category prefix
func (d *Dataset) ProductsInCategory(c Category) []Product {
	prefix := c.Prefix()
	if prefix == "" {
		return nil
	}

	var out []Product
	for _, p := range d.Products {
		if strings.HasPrefix(p.SKU, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// LowStock returns the products below their reorder level, in list order
func (d *Dataset) LowStock() []Product {
	var out []Product
	for _, p := range d.Products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// Period returns the financial period stored under key
func (d *Dataset) Period(key string) (FinancialPeriod, bool) {
	p, ok := d.Periods[key]
	return p, ok
}

// Order returns the order with the given id
func (d *Dataset) Order(id string) (Order, bool) {
	for _, o := range d.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Employee returns the employee with the given id
func (d *Dataset) Employee(id string) (Employee, bool) {
	for _, e := range d.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}
