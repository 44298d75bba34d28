package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, label string) float64 {
	c, err := cv.GetMetricWithLabelValues(label)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// useTestRegistry swaps the entries collector registry for the duration of a test.
func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	old := registerer
	registerer = reg
	t.Cleanup(func() { registerer = old })
	return reg
}

func newInstrumentedTestCache(t *testing.T, group string, size int, onEvict EvictCallback) Cache {
	t.Helper()
	c, err := New("memory", ProviderConfig{Size: size, TTL: time.Hour, Group: group, OnEvict: onEvict})
	if err != nil {
		t.Fatalf("New instrumented cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestInstrumentedCache_HitsAndMisses(t *testing.T) {
	useTestRegistry(t)
	c := newInstrumentedTestCache(t, "test-hits", 10, nil)

	hitsBefore := getCounterVecValue(HitsTotal, "test-hits")
	missesBefore := getCounterVecValue(MissesTotal, "test-hits")

	c.Set("k", []byte("v"))
	_, _ = c.Get("k")
	_, _ = c.Get("absent")

	if diff := getCounterVecValue(HitsTotal, "test-hits") - hitsBefore; diff != 1 {
		t.Errorf("Expected hits to increment by 1, got diff %.0f", diff)
	}
	if diff := getCounterVecValue(MissesTotal, "test-hits") - missesBefore; diff != 1 {
		t.Errorf("Expected misses to increment by 1, got diff %.0f", diff)
	}
}

func TestInstrumentedCache_EvictionsCallOriginal(t *testing.T) {
	useTestRegistry(t)
	var evicted []string
	c := newInstrumentedTestCache(t, "test-evict", 1, func(key string, _ []byte) {
		evicted = append(evicted, key)
	})

	before := getCounterVecValue(EvictionsTotal, "test-evict")
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	if diff := getCounterVecValue(EvictionsTotal, "test-evict") - before; diff != 1 {
		t.Errorf("Expected evictions to increment by 1, got diff %.0f", diff)
	}
	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("Expected caller OnEvict to see 'a', got %v", evicted)
	}
}

func TestInstrumentedCache_EntriesCollector(t *testing.T) {
	reg := useTestRegistry(t)
	c := newInstrumentedTestCache(t, "test-entries", 10, nil)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var found bool
	for _, mf := range families {
		if mf.GetName() != "cache_entries" {
			continue
		}
		for _, m := range mf.GetMetric() {
			found = true
			if got := m.GetGauge().GetValue(); got != 2 {
				t.Errorf("Expected cache_entries 2, got %.0f", got)
			}
		}
	}
	if !found {
		t.Fatal("Expected cache_entries to be collected")
	}

	_ = c.Close()
	families, _ = reg.Gather()
	for _, mf := range families {
		if mf.GetName() == "cache_entries" {
			t.Error("Expected cache_entries to be unregistered after Close")
		}
	}
}
