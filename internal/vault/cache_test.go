package vault

import (
	"errors"
	"testing"
	"time"
)

func TestListingCache_TTL(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := newListingCache(30*time.Second, clock)

	loads := 0
	load := func() ([]string, error) {
		loads++
		return []string{"a.md"}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := c.get(load); err != nil {
			t.Fatal(err)
		}
	}
	if loads != 1 {
		t.Errorf("loads within TTL = %d, want 1", loads)
	}

	now = now.Add(31 * time.Second)
	if _, err := c.get(load); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loads after TTL expiry = %d, want 2", loads)
	}
}

func TestListingCache_Invalidate(t *testing.T) {
	c := newListingCache(time.Hour, nil)

	loads := 0
	load := func() ([]string, error) {
		loads++
		return nil, nil
	}

	// A nil listing is a valid cached value only once loaded; force two
	// loads via explicit invalidation
	if _, err := c.get(load); err != nil {
		t.Fatal(err)
	}
	c.invalidate()
	if _, err := c.get(load); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2 after invalidation", loads)
	}
}

func TestListingCache_ErrorNotCached(t *testing.T) {
	c := newListingCache(time.Hour, nil)

	calls := 0
	failing := func() ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("disk trouble")
		}
		return []string{"ok.md"}, nil
	}

	if _, err := c.get(failing); err == nil {
		t.Fatal("first load should fail")
	}
	paths, err := c.get(failing)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Errorf("error result must not be cached; got %v", paths)
	}
}
