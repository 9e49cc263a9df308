package rules

import (
	"testing"
	"time"
)

func TestInMemoryRulesCacheMissUntilSet(t *testing.T) {
	cache := NewInMemoryRulesCache(DefaultCacheConfig())

	if cache.Get() != nil || cache.IsValid() {
		t.Fatal("new cache should be empty and invalid")
	}

	cache.Set([]*Rule{{ID: "a"}, {ID: "b"}})
	got := cache.Get()
	if len(got) != 2 || !cache.IsValid() {
		t.Fatalf("Get() = %v, want 2 rules", got)
	}

	// The returned slice is a copy
	got[0] = &Rule{ID: "mutated"}
	if cache.Get()[0].ID != "a" {
		t.Error("mutating the returned slice should not affect the cache")
	}
}

func TestInMemoryRulesCacheInvalidate(t *testing.T) {
	cache := NewInMemoryRulesCache(DefaultCacheConfig())
	cache.Set([]*Rule{{ID: "a"}})

	cache.Invalidate()

	if cache.Get() != nil || cache.IsValid() {
		t.Error("cache should be empty after Invalidate()")
	}
}

func TestInMemoryRulesCacheTTL(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	cache := NewInMemoryRulesCache(CacheConfig{TTL: time.Minute})
	cache.now = func() time.Time { return now }

	cache.Set([]*Rule{{ID: "a"}})
	now = now.Add(30 * time.Second)
	if cache.Get() == nil {
		t.Fatal("entry should still be fresh inside the TTL")
	}

	now = now.Add(time.Minute)
	if cache.Get() != nil || cache.IsValid() {
		t.Error("entry should expire after the TTL")
	}
}
