package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	shared := make([]bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err, wasShared := flight.Do("penalties:season-1", func() (any, error) {
				executions.Add(1)
				<-release
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = val
			shared[idx] = wasShared
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected 1 execution, got %d", got)
	}
	sharedCount := 0
	for i := 0; i < callers; i++ {
		if results[i] != 42 {
			t.Fatalf("caller %d got %v", i, results[i])
		}
		if shared[i] {
			sharedCount++
		}
	}
	if sharedCount != callers-1 {
		t.Fatalf("expected %d shared results, got %d", callers-1, sharedCount)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32

	for _, key := range []string{"a", "b"} {
		if _, err, _ := flight.Do(key, func() (any, error) {
			executions.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := executions.Load(); got != 2 {
		t.Fatalf("expected 2 executions, got %d", got)
	}
}
