package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	var shared atomic.Int32

	const callers = 16
	gate := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-gate
			val, err, fromLeader := g.Do("roster:hl-bearcats:2025-10-06", func() (any, error) {
				executions.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "roster", nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
				return
			}
			if val != "roster" {
				t.Errorf("Do value = %v", val)
			}
			if fromLeader {
				shared.Add(1)
			}
		}()
	}

	close(gate)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn ran %d times, want 1", got)
	}
	if got := shared.Load(); got != callers-1 {
		t.Fatalf("shared results = %d, want %d", got, callers-1)
	}
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	for _, key := range []string{"roster:hl-icehogs:2025-10-06", "roster:hl-icehogs:2025-10-07"} {
		if _, err, _ := g.Do(key, func() (any, error) {
			executions.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("Do(%s): %v", key, err)
		}
	}

	if got := executions.Load(); got != 2 {
		t.Fatalf("fn ran %d times, want 2", got)
	}
}
