// queue.go - run several conversions concurrently
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package queue runs independent conversions in parallel.  Every job
// is processed by its own call of the conversion function, so that no
// state is shared between jobs.
package queue

import (
	"runtime"
	"sync"
)

const queueLength = 1

// Func converts the named input.
type Func func(name string) (string, error)

// Result is the outcome of one job.
type Result struct {
	Name   string
	Output string
	Err    error
}

// Queue distributes jobs to a bounded number of workers.
type Queue struct {
	fn         Func
	maxWorkers int

	jobs    chan *jobSpec
	workers *sync.WaitGroup
	done    chan struct{}
}

type jobSpec struct {
	Name   string
	Result chan<- *Result
}

// NewQueue starts a queue which runs fn in up to maxWorkers goroutines
// at a time.  If maxWorkers is not positive, the number of CPUs is
// used.
func NewQueue(maxWorkers int, fn Func) *Queue {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	q := &Queue{
		fn:         fn,
		maxWorkers: maxWorkers,
		jobs:       make(chan *jobSpec, queueLength),
		workers:    &sync.WaitGroup{},
		done:       make(chan struct{}),
	}
	go q.scheduler()
	return q
}

// Submit adds a job to the queue.  The result can be read from the
// returned channel once the job is complete.
func (q *Queue) Submit(name string) <-chan *Result {
	c := make(chan *Result, 1)
	q.jobs <- &jobSpec{Name: name, Result: c}
	return c
}

// Finish must be called after the last job has been submitted.  The
// method waits until all jobs are complete.
func (q *Queue) Finish() {
	close(q.jobs)
	<-q.done
	q.workers.Wait()
}

func (q *Queue) scheduler() {
	defer close(q.done)

	workers := make(chan int, q.maxWorkers)
	for i := 0; i < q.maxWorkers; i++ {
		workers <- i
	}

	for job := range q.jobs {
		worker := <-workers
		q.workers.Add(1)
		go func(job *jobSpec) {
			defer q.workers.Done()
			out, err := q.fn(job.Name)
			workers <- worker
			job.Result <- &Result{Name: job.Name, Output: out, Err: err}
			close(job.Result)
		}(job)
	}
}

// Run converts all names using up to maxWorkers goroutines.  The
// results are returned in the order of names.
func Run(maxWorkers int, names []string, fn Func) []*Result {
	q := NewQueue(maxWorkers, fn)
	pending := make(chan (<-chan *Result), len(names))
	go func() {
		for _, name := range names {
			pending <- q.Submit(name)
		}
		close(pending)
		q.Finish()
	}()

	res := make([]*Result, 0, len(names))
	for c := range pending {
		res = append(res, <-c)
	}
	return res
}
