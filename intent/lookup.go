package intent

import (
	"regexp"
	"strings"

	"github.com/liamcoop/erpassistant/dataset"
)

var (
	orderRefPattern   = regexp.MustCompile(`(#?\d{5}|ord-?\d{5}|\b\d{5}\b)`)
	employeeIDPattern = regexp.MustCompile(`emp\d{3}`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// Lookup resolves entity references in free text against a dataset.
// Matching is case-insensitive substring containment; the first record in
// dataset order wins.
type Lookup struct {
	data *dataset.Dataset
}

// NewLookup creates a lookup over data
func NewLookup(data *dataset.Dataset) *Lookup {
	return &Lookup{data: data}
}

// FindProduct returns the first product whose full name, SKU or any single
// word of its name occurs in text
func (l *Lookup) FindProduct(text string) (dataset.Product, bool) {
	lower := strings.ToLower(text)
	for _, p := range l.data.Products {
		name := strings.ToLower(p.Name)
		if strings.Contains(lower, name) ||
			strings.Contains(lower, strings.ToLower(p.SKU)) ||
			containsAnyWord(lower, name) {
			return p, true
		}
	}
	return dataset.Product{}, false
}

// FindOrder extracts the first five-digit order reference in text and returns
// the order with exactly that id
func (l *Lookup) FindOrder(text string) (dataset.Order, bool) {
	ref := orderRefPattern.FindString(strings.ToLower(text))
	if ref == "" {
		return dataset.Order{}, false
	}
	return l.data.Order(nonDigitPattern.ReplaceAllString(ref, ""))
}

// FindEmployee resolves an EMPnnn token first and falls back to matching the
// employee's name, or any word of it
func (l *Lookup) FindEmployee(text string) (dataset.Employee, bool) {
	lower := strings.ToLower(text)

	if id := employeeIDPattern.FindString(lower); id != "" {
		if e, ok := l.data.Employee(strings.ToUpper(id)); ok {
			return e, true
		}
	}

	for _, e := range l.data.Employees {
		name := strings.ToLower(e.Name)
		if strings.Contains(lower, name) || containsAnyWord(lower, name) {
			return e, true
		}
	}
	return dataset.Employee{}, false
}

func containsAnyWord(text, name string) bool {
	for _, word := range strings.Fields(name) {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
