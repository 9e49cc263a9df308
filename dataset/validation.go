package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is wrapped by every error returned from Validate
var ErrInvalid = errors.New("invalid dataset")

var (
	orderIDPattern    = regexp.MustCompile(`^\d{5}$`)
	employeeIDPattern = regexp.MustCompile(`^EMP\d{3}$`)
)

// requiredPeriods are read by the response generator and must always exist
var requiredPeriods = []string{PeriodOctober2025, PeriodSeptember2025, PeriodQ32025}

// Validate checks every record of the dataset and reports all violations at once.
// A dataset that fails validation must not be served.
func Validate(d *Dataset) error {
	if d == nil {
		return fmt.Errorf("%w: dataset is nil", ErrInvalid)
	}

	var errs []error
	errs = append(errs, validateProducts(d.Products)...)
	errs = append(errs, validateOrders(d.Orders)...)
	errs = append(errs, validatePeriods(d.Periods)...)
	errs = append(errs, validateEmployees(d.Employees)...)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func validateProducts(products []Product) []error {
	var errs []error
	seen := make(map[string]bool, len(products))

	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("product %d: name cannot be empty", i))
		}

		if p.SKU == "" {
			errs = append(errs, fmt.Errorf("product %q: sku cannot be empty", p.Name))
		} else {
			if seen[p.SKU] {
				errs = append(errs, fmt.Errorf("product %q: duplicate sku %s", p.Name, p.SKU))
			}
			seen[p.SKU] = true

			// Category listings filter on the SKU prefix, so it must name a category
			if _, ok := p.Category(); !ok || !strings.Contains(p.SKU, "-") {
				errs = append(errs, fmt.Errorf("product %q: sku %s must start with a category prefix (LAP-, FUR-, ACC-)", p.Name, p.SKU))
			}
		}

		if p.Quantity < 0 {
			errs = append(errs, fmt.Errorf("product %s: quantity %d is negative", p.SKU, p.Quantity))
		}
		if p.ReorderLevel < 0 {
			errs = append(errs, fmt.Errorf("product %s: reorder level %d is negative", p.SKU, p.ReorderLevel))
		}
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %s: price %s is negative", p.SKU, p.Price))
		}
	}

	return errs
}

func validateOrders(orders []Order) []error {
	var errs []error
	seen := make(map[string]bool, len(orders))

	for i, o := range orders {
		if !orderIDPattern.MatchString(o.ID) {
			errs = append(errs, fmt.Errorf("order %d: id %q must be exactly 5 digits", i, o.ID))
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("order %s: duplicate id", o.ID))
		}
		seen[o.ID] = true

		if strings.TrimSpace(o.Customer) == "" {
			errs = append(errs, fmt.Errorf("order %s: customer cannot be empty", o.ID))
		}
		if !o.Status.Valid() {
			errs = append(errs, fmt.Errorf("order %s: unknown status %q", o.ID, o.Status))
		}
		if o.Items <= 0 {
			errs = append(errs, fmt.Errorf("order %s: items must be positive, got %d", o.ID, o.Items))
		}
		if o.Total.IsNegative() {
			errs = append(errs, fmt.Errorf("order %s: total %s is negative", o.ID, o.Total))
		}
		if o.Date.IsZero() || o.DeliveryDate.IsZero() {
			errs = append(errs, fmt.Errorf("order %s: order and delivery dates are required", o.ID))
		} else if o.DeliveryDate.Before(o.Date) {
			errs = append(errs, fmt.Errorf("order %s: delivery date %s is before order date %s",
				o.ID, o.DeliveryDate.Format("2006-01-02"), o.Date.Format("2006-01-02")))
		}
	}

	return errs
}

func validatePeriods(periods map[string]FinancialPeriod) []error {
	var errs []error

	for _, key := range requiredPeriods {
		if _, ok := periods[key]; !ok {
			errs = append(errs, fmt.Errorf("financial period %s is missing", key))
		}
	}

	for key, p := range periods {
		if p.Key != key {
			errs = append(errs, fmt.Errorf("financial period %s: stored under mismatched key %q", p.Key, key))
		}
		if p.Revenue.IsNegative() || p.Expenses.IsNegative() {
			errs = append(errs, fmt.Errorf("financial period %s: revenue and expenses cannot be negative", key))
		}
	}

	return errs
}

func validateEmployees(employees []Employee) []error {
	var errs []error
	seen := make(map[string]bool, len(employees))

	for i, e := range employees {
		if !employeeIDPattern.MatchString(e.ID) {
			errs = append(errs, fmt.Errorf("employee %d: id %q must match EMP followed by 3 digits", i, e.ID))
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("employee %s: duplicate id", e.ID))
		}
		seen[e.ID] = true

		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("employee %s: name cannot be empty", e.ID))
		}
		if e.LeaveBalance < 0 {
			errs = append(errs, fmt.Errorf("employee %s: leave balance %d is negative", e.ID, e.LeaveBalance))
		}
	}

	return errs
}
