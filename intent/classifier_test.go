package intent

import (
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/liamcoop/erpassistant/dataset"
	"github.com/liamcoop/erpassistant/rules"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewDefaultClassifier(dataset.Default())
	if err != nil {
		t.Fatalf("NewDefaultClassifier() failed: %v", err)
	}
	return c
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		input string
		want  Tag
	}{
		{"Hello there", Greeting},
		{"good evening, show me the stock", Greeting},
		{"hi, check inventory", Greeting},
		{"thanks a lot", Thanks},
		{"what can you do?", Help},
		{"show inventory", InventoryGeneral},
		{"computer stock", InventoryCategory},
		{"low stock items", InventoryLowStock},
		{"check inventory for MacBook Pro 14", InventorySpecific},
		{"track order 12345", OrderSpecific},
		{"track order 99999", OrderGeneral},
		{"financial summary", FinancialSummary},
		{"show october revenue", FinancialMonthly},
		{"revenue last month", FinancialMonthly},
		{"quarterly profit", FinancialQuarterly},
		{"list all staff", EmployeeGeneral},
		{"employee EMP002", EmployeeSpecific},
		{"staff sarah johnson", EmployeeSpecific},
		{"generate a report", Report},
		{"system status", SystemStatus},
		{"xyzzy plugh", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := c.Classify(tt.input); got.Tag != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got.Tag, tt.want)
			}
		})
	}
}

func TestClassifyAttachesPayload(t *testing.T) {
	c := newTestClassifier(t)

	in := c.Classify("check inventory for MacBook Pro 14")
	if in.Product == nil || in.Product.SKU != "LAP-MAC-PRO14" {
		t.Errorf("Product = %+v, want the MacBook", in.Product)
	}

	in = c.Classify("track order 12345")
	if in.Order == nil || in.Order.Customer != "Acme Corporation" || in.Order.Status != dataset.StatusInTransit {
		t.Errorf("Order = %+v, want 12345 for Acme Corporation in transit", in.Order)
	}

	in = c.Classify("employee EMP002")
	if in.Employee == nil || in.Employee.Name != "Michael Chen" {
		t.Errorf("Employee = %+v, want Michael Chen", in.Employee)
	}

	in = c.Classify("furniture inventory")
	if in.Tag != InventoryCategory || in.Category != dataset.CategoryFurniture {
		t.Errorf("Classify(furniture inventory) = %+v, want furniture category", in)
	}

	in = c.Classify("accessories inventory")
	if in.Category != dataset.CategoryAccessories {
		t.Errorf("Category = %q, want accessories", in.Category)
	}

	in = c.Classify("revenue last month")
	if in.Period != dataset.PeriodSeptember2025 {
		t.Errorf("Period = %q, want %q", in.Period, dataset.PeriodSeptember2025)
	}
}

func TestClassifyOnlyOnePayload(t *testing.T) {
	c := newTestClassifier(t)

	for _, input := range []string{"hello", "show inventory", "track order 12345", "financial summary", "employee emp001"} {
		in := c.Classify(input)
		set := 0
		if in.Product != nil {
			set++
		}
		if in.Order != nil {
			set++
		}
		if in.Employee != nil {
			set++
		}
		if in.Category != "" {
			set++
		}
		if in.Period != "" {
			set++
		}
		if set > 1 {
			t.Errorf("Classify(%q) carries %d payloads", input, set)
		}
	}
}

func TestClassifyGreetingPrefixWins(t *testing.T) {
	c := newTestClassifier(t)
	greetings := []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

	rapid.Check(t, func(t *rapid.T) {
		greeting := rapid.SampledFrom(greetings).Draw(t, "greeting")
		if rapid.Bool().Draw(t, "upper") {
			greeting = strings.ToUpper(greeting)
		}
		suffix := rapid.String().Draw(t, "suffix")

		if got := c.Classify(greeting + suffix); got.Tag != Greeting {
			t.Fatalf("Classify(%q) = %s, want greeting", greeting+suffix, got.Tag)
		}
	})
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newTestClassifier(t)

	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		first := c.Classify(input)
		second := c.Classify(input)
		if first.Tag != second.Tag {
			t.Fatalf("Classify(%q) returned %s then %s", input, first.Tag, second.Tag)
		}
		if !first.Tag.Valid() {
			t.Fatalf("Classify(%q) returned unknown tag %q", input, first.Tag)
		}
	})
}

func TestExplain(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		input string
		want  []string
	}{
		{"xyzzy", nil},
		{"hello", []string{"intent.greeting"}},
		{"check inventory for MacBook Pro 14", []string{"intent.inventory"}},
		{"computer stock", []string{"intent.inventory", "inventory.category.laptop"}},
		{"show october revenue", []string{"intent.financial", "financial.period.october"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := c.Explain(tt.input)
			if !slices.Equal(got.MatchedRules, tt.want) {
				t.Errorf("Explain(%q).MatchedRules = %v, want %v", tt.input, got.MatchedRules, tt.want)
			}
		})
	}
}

func TestClassifyRuleChangesTakeEffect(t *testing.T) {
	c := newTestClassifier(t)

	if got := c.Classify("xyzzy"); got.Tag != Unknown {
		t.Fatalf("Classify(xyzzy) = %s, want unknown", got.Tag)
	}

	err := c.Engine().AddRule(&rules.Rule{
		ID:         "intent.magic",
		Set:        SetIntent,
		Expression: matches(`xyzzy`),
		Priority:   5,
		Outcome:    string(Help),
		Active:     true,
	})
	if err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}

	if got := c.Classify("xyzzy"); got.Tag != Help {
		t.Errorf("Classify(xyzzy) = %s after adding a rule, want help", got.Tag)
	}
}

func TestClassifyUnknownOutcomeFallsBack(t *testing.T) {
	store, err := rules.NewInMemoryRuleStoreWith([]*rules.Rule{
		{ID: "odd", Set: SetIntent, Expression: `true`, Priority: 1, Outcome: "not-a-tag", Active: true},
	})
	if err != nil {
		t.Fatalf("NewInMemoryRuleStoreWith() failed: %v", err)
	}
	engine, err := rules.NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	c := NewClassifier(engine, dataset.Default())
	if got := c.Classify("anything"); got.Tag != Unknown {
		t.Errorf("Classify() = %s, want unknown", got.Tag)
	}
}

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := rules.NewEngine(rules.NewInMemoryRuleStore())
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	seen := map[string]bool{}
	for _, r := range DefaultRules() {
		if seen[r.ID] {
			t.Errorf("duplicate rule ID %s", r.ID)
		}
		seen[r.ID] = true

		if err := engine.CompileRule(r.ID, r.Expression); err != nil {
			t.Errorf("rule %s does not compile: %v", r.ID, err)
		}
	}
}

func TestTagValid(t *testing.T) {
	for _, tag := range Tags {
		if !tag.Valid() {
			t.Errorf("%s should be valid", tag)
		}
	}
	if Tag("inventory").Valid() {
		t.Error("family names are not tags")
	}
}
