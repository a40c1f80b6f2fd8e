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

// indexed tags a job or result with its submission order
type indexed[T any] struct {
	seq  int
	item T
}

// Pool runs jobs on a fixed number of workers. Wait returns results in
// submission order regardless of completion order.
type Pool struct {
	workers    int
	jobQueue   chan indexed[Job]
	results    chan indexed[Result]
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	mu         sync.Mutex
	submitted  int
	collected  []indexed[Result]
	drained    chan struct{}
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexed[Job], workers*2),
		results:    make(chan indexed[Result], workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
		drained:    make(chan struct{}),
	}
}

// Start starts the workers and the result collector. Results are drained
// as they arrive, so any number of jobs may be submitted before Wait.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

func (p *Pool) collect() {
	defer close(p.drained)
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
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if p.ctx.Err() != nil {
				return
			}
			// the collector drains results until Wait or Shutdown closes them
			p.results <- indexed[Result]{seq: job.seq, item: job.item.Execute(p.ctx)}
		}
	}
}

// Submit queues a job. It blocks while the queue is full and returns
// false if the pool was shut down.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}

	p.mu.Lock()
	seq := p.submitted
	p.submitted++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- indexed[Job]{seq: seq, item: job}:
		return true
	}
}

// Wait closes the job queue, waits for all jobs and returns their results
// in submission order. Submit must not be called concurrently with Wait.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.drained

	collected := p.collected
	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })

	results := make([]Result, len(collected))
	for i, r := range collected {
		results[i] = r.item
	}
	return results
}

// Shutdown cancels the jobs' context and stops the workers once their
// current job returns. Queued jobs are discarded. Results of the jobs that
// ran are still returned by Wait.
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
