package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default returns a fresh copy of the compiled-in dataset
func Default() *Dataset {
	octoberGrowth := 12.0

	return &Dataset{
		Products: []Product{
			{Name: "Dell Latitude 5520 Laptop", SKU: "LAP-DELL-5520", Quantity: 45, Price: money("1299.99"), Supplier: "Dell Inc", Location: "Warehouse A", ReorderLevel: 20},
			{Name: "HP EliteBook 840 Laptop", SKU: "LAP-HP-840", Quantity: 12, Price: money("1449.99"), Supplier: "HP Enterprise", Location: "Warehouse A", ReorderLevel: 15},
			{Name: "Lenovo ThinkPad X1", SKU: "LAP-LEN-X1", Quantity: 28, Price: money("1599.99"), Supplier: "Lenovo Corp", Location: "Warehouse B", ReorderLevel: 20},
			{Name: "MacBook Pro 14", SKU: "LAP-MAC-PRO14", Quantity: 8, Price: money("2499.99"), Supplier: "Apple Inc", Location: "Warehouse A", ReorderLevel: 10},
			{Name: "Office Chair Pro", SKU: "FUR-CHAIR-001", Quantity: 67, Price: money("299.99"), Supplier: "Office Furniture Co", Location: "Warehouse C", ReorderLevel: 30},
			{Name: "Standing Desk Electric", SKU: "FUR-DESK-002", Quantity: 23, Price: money("599.99"), Supplier: "ErgoWorks", Location: "Warehouse C", ReorderLevel: 15},
			{Name: "Wireless Mouse MX Master", SKU: "ACC-MOUSE-MX", Quantity: 156, Price: money("99.99"), Supplier: "Logitech", Location: "Warehouse B", ReorderLevel: 50},
			{Name: "Mechanical Keyboard RGB", SKU: "ACC-KB-RGB", Quantity: 89, Price: money("149.99"), Supplier: "Corsair", Location: "Warehouse B", ReorderLevel: 40},
		},
		Orders: []Order{
			{ID: "12345", Customer: "Acme Corporation", Status: StatusInTransit, Items: 5, Total: money("12450.00"), Date: day(2025, 10, 20), DeliveryDate: day(2025, 10, 29)},
			{ID: "12346", Customer: "TechStart Inc", Status: StatusDelivered, Items: 12, Total: money("8950.00"), Date: day(2025, 10, 15), DeliveryDate: day(2025, 10, 22)},
			{ID: "12347", Customer: "Global Solutions Ltd", Status: StatusProcessing, Items: 8, Total: money("15670.00"), Date: day(2025, 10, 25), DeliveryDate: day(2025, 11, 2)},
			{ID: "12348", Customer: "Innovate Systems", Status: StatusPendingApproval, Items: 3, Total: money("4500.00"), Date: day(2025, 10, 26), DeliveryDate: day(2025, 11, 5)},
		},
		Periods: map[string]FinancialPeriod{
			PeriodOctober2025: {
				Key: PeriodOctober2025, Label: "October 2025",
				Revenue: money("245680"), Expenses: money("156420"), Profit: money("89260"),
				Margin: 36.4, Growth: &octoberGrowth,
			},
			PeriodSeptember2025: {
				Key: PeriodSeptember2025, Label: "September 2025",
				Revenue: money("219350"), Expenses: money("145230"), Profit: money("74120"),
				Margin: 33.8,
			},
			PeriodQ32025: {
				Key: PeriodQ32025, Label: "Q3 2025",
				Revenue: money("687450"), Expenses: money("445680"), Profit: money("241770"),
				Margin: 35.2,
			},
		},
		Employees: []Employee{
			{ID: "EMP001", Name: "Sarah Johnson", Department: "Sales", Position: "Sales Manager", LeaveBalance: 12},
			{ID: "EMP002", Name: "Michael Chen", Department: "IT", Position: "System Administrator", LeaveBalance: 8},
			{ID: "EMP003", Name: "Emily Rodriguez", Department: "Finance", Position: "Financial Analyst", LeaveBalance: 15},
			{ID: "EMP004", Name: "David Kumar", Department: "HR", Position: "HR Manager", LeaveBalance: 6},
		},
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
