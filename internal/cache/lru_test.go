// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clk := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](capacity, ttl)
	c.now = clk.Now
	return c, clk
}

func TestLRU_GetAdd(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s missing", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("evictions = %d, want 1", s.Evictions)
	}
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	c, clk := newTestLRU(10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	clk.Advance(30 * time.Second)
	c.Add("b", 3) // refreshes b's TTL

	clk.Advance(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := c.Get("b"); !ok || v != 3 {
		t.Errorf("Get(b) = %d, %v", v, ok)
	}

	clk.Advance(time.Minute)
	if n := c.CleanupExpired(); n != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after cleanup", c.Len())
	}
}

func TestLRU_RemoveClearStats(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", 1)
	if !c.Remove("a") || c.Remove("a") {
		t.Error("Remove reported wrong presence")
	}

	c.Add("x", 1)
	c.Get("x")
	c.Get("y")
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 50 {
		t.Errorf("stats = %+v", s)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("Clear left entries")
	}
	if _, ok := c.Get("x"); ok {
		t.Error("x survived Clear")
	}
}

func TestNewLRU_Defaults(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("capacity %d ttl %v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](100, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*31+i)%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Year, Month, Day int
		Lunar            bool
	}
	a := GenerateKey("saju", params{1990, 5, 15, false})
	b := GenerateKey("saju", params{1990, 5, 15, false})
	c := GenerateKey("saju", params{1990, 5, 15, true})

	if a != b {
		t.Error("equal params produced different keys")
	}
	if a == c {
		t.Error("different params produced equal keys")
	}
	if !strings.HasPrefix(a, "saju:") || len(a) != len("saju:")+32 {
		t.Errorf("key = %q", a)
	}
	if got := GenerateKey("bad", make(chan int)); !strings.HasPrefix(got, "bad:") {
		t.Errorf("fallback key = %q", got)
	}
}
