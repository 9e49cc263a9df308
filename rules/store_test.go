package rules

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// TestRuleStoreInterfaceExists verifies at compile time that both stores implement RuleStore
func TestRuleStoreInterfaceExists(t *testing.T) {
	var _ RuleStore = (*InMemoryRuleStore)(nil)
	var _ RuleStore = (*PostgresRuleStore)(nil)
}

// TestInMemoryRuleStoreAdd verifies basic Add functionality
func TestInMemoryRuleStoreAdd(t *testing.T) {
	store := NewInMemoryRuleStore()

	rule := &Rule{ID: "test-1", Set: "intent", Name: "Test Rule", Expression: `true`, Active: true}
	if err := store.Add(rule); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	retrieved, err := store.Get("test-1")
	if err != nil {
		t.Fatalf("Get() failed after Add(): %v", err)
	}
	if retrieved.Name != rule.Name {
		t.Errorf("Retrieved rule Name = %s, want %s", retrieved.Name, rule.Name)
	}
}

// TestInMemoryRuleStoreAddDuplicate verifies duplicate IDs are rejected
func TestInMemoryRuleStoreAddDuplicate(t *testing.T) {
	store := NewInMemoryRuleStore()

	if err := store.Add(&Rule{ID: "dup", Expression: `true`, Active: true}); err != nil {
		t.Fatalf("First Add() should succeed: %v", err)
	}
	if err := store.Add(&Rule{ID: "dup", Expression: `false`, Active: true}); err == nil {
		t.Error("Second Add() with the same ID should fail")
	}
}

// TestInMemoryRuleStoreGetNotFound verifies missing IDs return an error
func TestInMemoryRuleStoreGetNotFound(t *testing.T) {
	store := NewInMemoryRuleStore()

	if _, err := store.Get("missing"); err == nil {
		t.Error("Get() should fail for a missing rule")
	}
}

// TestInMemoryRuleStoreTimestamps verifies Add sets and Update preserves CreatedAt
func TestInMemoryRuleStoreTimestamps(t *testing.T) {
	store := NewInMemoryRuleStore()

	before := time.Now()
	rule := &Rule{ID: "ts", Expression: `true`, Active: true}
	if err := store.Add(rule); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if rule.CreatedAt.Before(before) || rule.UpdatedAt.Before(before) {
		t.Error("Add() should set CreatedAt and UpdatedAt")
	}
	created := rule.CreatedAt

	time.Sleep(5 * time.Millisecond)
	updated := &Rule{ID: "ts", Expression: `false`, Active: true}
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("Update() CreatedAt = %v, want %v", updated.CreatedAt, created)
	}
	if !updated.UpdatedAt.After(created) {
		t.Error("Update() should advance UpdatedAt")
	}
}

// TestInMemoryRuleStoreUpdateNotFound verifies updating a missing rule fails
func TestInMemoryRuleStoreUpdateNotFound(t *testing.T) {
	store := NewInMemoryRuleStore()

	if err := store.Update(&Rule{ID: "missing"}); err == nil {
		t.Error("Update() should fail for a missing rule")
	}
}

// TestInMemoryRuleStoreListActive verifies inactive rules are filtered and order is stable
func TestInMemoryRuleStoreListActive(t *testing.T) {
	store, err := NewInMemoryRuleStoreWith([]*Rule{
		{ID: "c", Set: "intent", Priority: 3, Active: true},
		{ID: "a", Set: "intent", Priority: 1, Active: true},
		{ID: "off", Set: "intent", Priority: 0, Active: false},
		{ID: "b", Set: "intent", Priority: 2, Active: true},
		{ID: "sub", Set: "financial.period", Priority: 1, Active: true},
	})
	if err != nil {
		t.Fatalf("NewInMemoryRuleStoreWith() failed: %v", err)
	}

	active, err := store.ListActive()
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}

	want := []string{"sub", "a", "b", "c"}
	if len(active) != len(want) {
		t.Fatalf("ListActive() returned %d rules, want %d", len(active), len(want))
	}
	for i, r := range active {
		if r.ID != want[i] {
			t.Errorf("active[%d] = %s, want %s", i, r.ID, want[i])
		}
	}
}

// TestInMemoryRuleStoreListActiveEmpty verifies an empty store lists nothing
func TestInMemoryRuleStoreListActiveEmpty(t *testing.T) {
	active, err := NewInMemoryRuleStore().ListActive()
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("ListActive() returned %d rules, want 0", len(active))
	}
}

// TestInMemoryRuleStoreDelete verifies Delete removes the rule
func TestInMemoryRuleStoreDelete(t *testing.T) {
	store := NewInMemoryRuleStore()
	_ = store.Add(&Rule{ID: "gone", Active: true})

	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("gone"); err == nil {
		t.Error("Get() should fail after Delete()")
	}
	if err := store.Delete("gone"); err == nil {
		t.Error("Second Delete() should fail")
	}
}

// TestInMemoryRuleStoreConcurrentAdd verifies concurrent adds of distinct rules all land
func TestInMemoryRuleStoreConcurrentAdd(t *testing.T) {
	store := NewInMemoryRuleStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Add(&Rule{ID: fmt.Sprintf("rule-%d", i), Priority: i, Active: true}); err != nil {
				t.Errorf("Add() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	active, _ := store.ListActive()
	if len(active) != 100 {
		t.Errorf("ListActive() returned %d rules, want 100", len(active))
	}
}
