// Package worker runs analyses concurrently with per-domain rate limits
package worker

import (
	"context"
	"sort"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// indexed pairs a result with the submission order of its job
type indexed struct {
	seq    int
	result Result
}

// Pool manages a fixed number of workers executing jobs concurrently.
// Wait returns results in submission order.
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    chan indexed
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	mu        sync.Mutex
	submitted int

	collected   []indexed
	collectDone chan struct{}
}

type indexedJob struct {
	seq int
	job Job
}

// NewPool creates a new worker pool bound to ctx. Cancelling ctx stops the
// workers after their current job.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2),
		results:    make(chan indexed, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the workers and the result collector
func (p *Pool) Start() {
	p.collectDone = make(chan struct{})
	go p.collect()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// collect drains results until the channel is closed
func (p *Pool) collect() {
	defer close(p.collectDone)
	for r := range p.results {
		p.collected = append(p.collected, r)
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := item.job.Execute(p.ctx)
			select {
			case p.results <- indexed{seq: item.seq, result: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It returns false when the pool has been shut down.
// Submit must not be called concurrently with Wait.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	seq := p.submitted
	p.submitted++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- indexedJob{seq: seq, job: job}:
		return true
	}
}

// Wait closes the queue, waits for all jobs and returns their results in
// submission order. Jobs dropped by a shutdown have no result.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	p.cancelFunc()

	if p.collectDone == nil {
		return []Result{}
	}
	<-p.collectDone

	collected := p.collected
	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })

	results := make([]Result, len(collected))
	for i, r := range collected {
		results[i] = r.result
	}
	return results
}

// Shutdown stops the workers immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
