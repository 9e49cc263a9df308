package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresSource loads the dataset from the tables created by the migrations.
// Rows are read in sort_order so list order, and with it lookup precedence, is stable.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a PostgreSQL-backed Source
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Load reads all four collections and validates the result
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	d := &Dataset{Periods: make(map[string]FinancialPeriod)}

	var err error
	if d.Products, err = s.loadProducts(ctx); err != nil {
		return nil, err
	}
	if d.Orders, err = s.loadOrders(ctx); err != nil {
		return nil, err
	}
	if d.Periods, err = s.loadPeriods(ctx); err != nil {
		return nil, err
	}
	if d.Employees, err = s.loadEmployees(ctx); err != nil {
		return nil, err
	}

	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresSource) loadProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, sku, quantity, price, supplier, location, reorder_level
		FROM products
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Name, &p.SKU, &p.Quantity, &p.Price,
			&p.Supplier, &p.Location, &p.ReorderLevel); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (s *PostgresSource) loadOrders(ctx context.Context) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, customer, status, items, total, order_date, delivery_date
		FROM orders
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var status string
		if err := rows.Scan(&o.ID, &o.Customer, &status, &o.Items, &o.Total,
			&o.Date, &o.DeliveryDate); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Status = OrderStatus(status)
		o.Date = o.Date.UTC()
		o.DeliveryDate = o.DeliveryDate.UTC()
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (s *PostgresSource) loadPeriods(ctx context.Context) (map[string]FinancialPeriod, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period_key, label, revenue, expenses, profit, margin, growth
		FROM financial_periods
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial periods: %w", err)
	}
	defer rows.Close()

	periods := make(map[string]FinancialPeriod)
	for rows.Next() {
		var p FinancialPeriod
		var growth sql.NullFloat64
		if err := rows.Scan(&p.Key, &p.Label, &p.Revenue, &p.Expenses, &p.Profit,
			&p.Margin, &growth); err != nil {
			return nil, fmt.Errorf("failed to scan financial period: %w", err)
		}
		if growth.Valid {
			g := growth.Float64
			p.Growth = &g
		}
		periods[p.Key] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial periods: %w", err)
	}
	return periods, nil
}

func (s *PostgresSource) loadEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, department, job_title, leave_balance
		FROM employees
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.Position, &e.LeaveBalance); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}
