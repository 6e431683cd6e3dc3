package sim

import "sync"

// WorkerPool runs queued jobs on a fixed set of worker goroutines. Wait
// blocks until the queue has drained and every worker is idle, so a round
// of jobs can be fenced before the next one starts.
type WorkerPool struct {
	mu      sync.Mutex
	jobs    *sync.Cond
	done    *sync.Cond
	queue   []func()
	workers int
	waiting int
	stopped bool
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(workers int) *WorkerPool {
	p := &WorkerPool{workers: workers}
	p.jobs = sync.NewCond(&p.mu)
	p.done = sync.NewCond(&p.mu)
	return p
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workers; i++ {
		go p.work()
	}
}

// QueueJob enqueues a job for execution.
func (p *WorkerPool) QueueJob(job func()) {
	p.mu.Lock()
	p.queue = append(p.queue, job)
	p.mu.Unlock()
	p.jobs.Signal()
}

// Wait blocks until all queued jobs have finished and every worker is idle.
func (p *WorkerPool) Wait() {
	p.mu.Lock()
	for p.busy() {
		p.done.Wait()
	}
	p.mu.Unlock()
}

// Stop terminates the workers once the queue has drained.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.jobs.Broadcast()
}

// busy reports whether any job is queued or running. Callers must hold the
// mutex.
func (p *WorkerPool) busy() bool {
	return p.waiting != p.workers || len(p.queue) > 0
}

func (p *WorkerPool) work() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.waiting++
			if !p.busy() {
				p.done.Broadcast()
			}
			p.jobs.Wait()
			p.waiting--
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		job()
	}
}
