package cache

import (
	"testing"
	"time"
)

func TestFactory_New_UnknownProvider(t *testing.T) {
	_, err := New("nonexistent", ProviderConfig{})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestFactory_RegisteredProviders(t *testing.T) {
	names := RegisteredProviders()

	want := []string{"memory", "redis"}
	if len(names) != len(want) {
		t.Fatalf("Expected providers %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected sorted providers %v, got %v", want, names)
			break
		}
	}
}

func TestFactory_Register_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestFactory_Register_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on nil provider")
		}
	}()
	Register("nil-provider", nil)
}

func TestFactory_New_Redis_InvalidAddress(t *testing.T) {
	_, err := New("redis", ProviderConfig{
		Size:         100,
		TTL:          time.Hour,
		RedisAddress: "localhost:59999", // unlikely to have Redis here
	})
	if err == nil {
		t.Fatal("Expected error when connecting to invalid Redis address")
	}
}
