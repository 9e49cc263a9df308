package conversation

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(newTestAssistant(t))

	a := m.Create()
	b := m.Create()
	if a.ID == b.ID {
		t.Fatal("Create() returned duplicate ids")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	got, err := m.Get(a.ID)
	if err != nil || got != a {
		t.Errorf("Get() = %v, %v; want session a", got, err)
	}

	ids := m.List()
	if len(ids) != 2 || !slices.Contains(ids, a.ID) || !slices.Contains(ids, b.ID) {
		t.Errorf("List() = %v", ids)
	}
	if !slices.IsSorted(ids) {
		t.Errorf("List() = %v, want sorted", ids)
	}

	if err := m.Delete(a.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := m.Get(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrSessionNotFound", err)
	}
	if err := m.Delete(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete() error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager(newTestAssistant(t))
	a, b := m.Create(), m.Create()

	if _, err := a.Submit(context.Background(), "show inventory"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if len(b.Context().Recent) != 0 {
		t.Errorf("session b saw session a's history: %v", b.Context().Recent)
	}
	if len(a.Context().Recent) != 1 {
		t.Errorf("session a Recent = %v", a.Context().Recent)
	}
}

func TestManagerOnChange(t *testing.T) {
	m := NewManager(newTestAssistant(t))

	var counts []int
	m.OnChange(func(active int) { counts = append(counts, active) })

	s := m.Create()
	m.Create()
	_ = m.Delete(s.ID)
	_ = m.Delete("missing")

	if !slices.Equal(counts, []int{1, 2, 1}) {
		t.Errorf("OnChange counts = %v, want [1 2 1]", counts)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(newTestAssistant(t))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := m.Create()
			_, _ = s.Submit(context.Background(), "hello")
			_ = m.List()
			_ = m.Delete(s.ID)
		}()
	}
	wg.Wait()

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
