package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestNewCircuitBreakerRegistry(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
	}

	registry := NewCircuitBreakerRegistry(config)

	if registry == nil {
		t.Fatal("expected registry to be created")
	}
	if registry.breakers == nil {
		t.Error("expected breakers map to be initialized")
	}
	if registry.config != config {
		t.Error("expected config to be set")
	}
}

func TestCircuitBreakerRegistry_GetBreaker(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	breaker1 := registry.GetBreaker(BreakerYahoo)
	if breaker1 == nil {
		t.Fatal("expected breaker to be created")
	}

	breaker2 := registry.GetBreaker(BreakerYahoo)
	if breaker1 != breaker2 {
		t.Error("expected same breaker instance")
	}

	breaker3 := registry.GetBreaker(BreakerAlpaca)
	if breaker1 == breaker3 {
		t.Error("expected different breaker for different name")
	}
}

func TestCircuitBreakerRegistry_Execute(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	result, err := registry.Execute(ctx, "test-service", func() (any, error) {
		return "success", nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %v", result)
	}

	expectedErr := errors.New("test error")
	result, err = registry.Execute(ctx, "test-service", func() (any, error) {
		return nil, expectedErr
	})
	if err == nil {
		t.Error("expected error")
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_ContextCanceled(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registry.Execute(ctx, "test-service", func() (any, error) {
		return "should not reach", nil
	})
	if err == nil {
		t.Error("expected error due to cancelled context")
	}
}

func TestCircuitBreakerRegistry_Status(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	_, _ = registry.Execute(ctx, "service-a", func() (any, error) {
		return "ok", nil
	})
	_, _ = registry.Execute(ctx, "service-b", func() (any, error) {
		return nil, errors.New("fail")
	})

	status := registry.Status()

	if len(status) != 2 {
		t.Errorf("expected 2 breakers in status, got %d", len(status))
	}
	if status["service-a"].TotalSuccesses != 1 {
		t.Errorf("expected 1 success for service-a, got %d", status["service-a"].TotalSuccesses)
	}
	if status["service-b"].TotalFailures != 1 {
		t.Errorf("expected 1 failure for service-b, got %d", status["service-b"].TotalFailures)
	}
}

func TestCircuitBreakerRegistry_TripsAfterFailures(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     1 * time.Second,
	}
	registry := NewCircuitBreakerRegistry(config)
	ctx := context.Background()

	// ReadyToTrip requires >= 5 requests with >= 50% failures
	for i := 0; i < 5; i++ {
		_, _ = registry.Execute(ctx, "failing-service", func() (any, error) {
			return nil, errors.New("fail")
		})
	}

	status := registry.Status()
	if status["failing-service"].State != "open" {
		t.Errorf("expected breaker to be open, got %s", status["failing-service"].State)
	}

	// Next call fails fast without invoking the function
	_, err := registry.Execute(ctx, "failing-service", func() (any, error) {
		return "should not execute", nil
	})
	if err == nil {
		t.Error("expected error due to open circuit breaker")
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		if err.Error() != "service failing-service unavailable: circuit breaker open" {
			t.Errorf("unexpected error: %v", err)
		}
	}
}

func TestWithCircuitBreaker(t *testing.T) {
	testRegistry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	SetGlobalRegistry(testRegistry)

	ctx := context.Background()

	result, err := WithCircuitBreaker(ctx, "test", func() (string, error) {
		return "hello", nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "hello" {
		t.Errorf("expected 'hello', got %s", result)
	}

	bars, err := WithCircuitBreaker(ctx, "slice-test", func() ([]int, error) {
		return []int{1, 2, 3}, nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Errorf("expected 3 items, got %d", len(bars))
	}

	_, err = WithCircuitBreaker(ctx, "err-test", func() (string, error) {
		return "", errors.New("test error")
	})
	if err == nil {
		t.Error("expected error")
	}
}

func TestBreakerConstants(t *testing.T) {
	if BreakerYahoo != "yahoo" {
		t.Error("unexpected BreakerYahoo constant")
	}
	if BreakerAlpaca != "alpaca" {
		t.Error("unexpected BreakerAlpaca constant")
	}
	if BreakerBedrock != "bedrock" {
		t.Error("unexpected BreakerBedrock constant")
	}
}

func TestGetGlobalRegistry(t *testing.T) {
	registry := GetGlobalRegistry()
	if registry == nil {
		t.Fatal("expected global registry to be created")
	}
	if registry2 := GetGlobalRegistry(); registry != registry2 {
		t.Error("expected same global registry instance")
	}
}

func TestCircuitBreakerRegistry_GetBreaker_Concurrent(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	const goroutines = 100
	var wg sync.WaitGroup
	breakers := make(chan *gobreaker.CircuitBreaker[any], goroutines)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			breakers <- registry.GetBreaker("concurrent-breaker")
		}()
	}

	wg.Wait()
	close(breakers)

	var first *gobreaker.CircuitBreaker[any]
	for cb := range breakers {
		if first == nil {
			first = cb
		} else if cb != first {
			t.Error("all goroutines should get the same breaker instance")
		}
	}

	if status := registry.Status(); len(status) != 1 {
		t.Errorf("expected 1 breaker, got %d", len(status))
	}
}
