// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"sync"
)

// Pool is a fixed-size worker pool for compute-bound generation calls. It
// keeps model inference in its own execution domain so generation never
// competes with the network gate for slots, and saturated generation never
// blocks I/O fan-out.
type Pool struct {
	tasks chan poolTask
	wg    sync.WaitGroup
	once  sync.Once
}

type poolTask struct {
	run func() (string, error)
	out chan poolResult
}

type poolResult struct {
	value string
	err   error
}

// NewPool starts size workers. Close must be called to stop them.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{tasks: make(chan poolTask)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		value, err := t.run()
		t.out <- poolResult{value: value, err: err}
	}
}

// Do submits fn to the pool and waits for its result. Submission blocks
// while all workers are busy. Once dispatched, fn runs to completion even
// if ctx is cancelled during the wait; the result channel is buffered so
// the worker is never stranded.
func (p *Pool) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	t := poolTask{run: fn, out: make(chan poolResult, 1)}

	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-t.out:
		return r.value, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops accepting work and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
