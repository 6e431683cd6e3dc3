package sim

import (
	"fmt"
	"sync"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := NewWorkerPool(workers)
			pool.Start()
			defer pool.Stop()

			const jobs = 1000
			var mu sync.Mutex
			count := 0
			for i := 0; i < jobs; i++ {
				pool.QueueJob(func() {
					mu.Lock()
					count++
					mu.Unlock()
				})
			}
			pool.Wait()

			mu.Lock()
			defer mu.Unlock()
			if count != jobs {
				t.Errorf("ran %d jobs, want %d", count, jobs)
			}
		})
	}
}

func TestWorkerPoolWaitFencesRounds(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	var mu sync.Mutex
	var order []int
	for round := 0; round < 3; round++ {
		round := round
		for i := 0; i < 10; i++ {
			pool.QueueJob(func() {
				mu.Lock()
				order = append(order, round)
				mu.Unlock()
			})
		}
		pool.Wait()
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 30 {
		t.Fatalf("ran %d jobs, want 30", len(order))
	}
	for i, round := range order {
		if want := i / 10; round != want {
			t.Fatalf("job %d ran in round %d, want %d", i, round, want)
		}
	}
}

func TestWorkerPoolWaitWithEmptyQueue(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	// Must return once the workers go idle.
	pool.Wait()
}
