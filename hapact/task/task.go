/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package task

import (
	"fmt"
	"sync"
)

// Pending attribute writes a transport may buffer before Enqueue blocks.
// BLE write-without-response bursts are the worst case; a small fixed
// depth keeps memory bounded without stalling them.
const queueDepth = 16

type job struct {
	fn func() error
	ch chan error
}

// A DispatchQueue runs jobs serially on a single goroutine.  Transports
// push incoming attribute writes through one of these so that no two
// dispatches into the same accessory are ever concurrent; the protocol
// core relies on that serialization and takes no locks of its own.
type DispatchQueue struct {
	jobCh  chan job
	stopCh chan struct{}
	active bool
	name   string
	mtx    sync.Mutex
	wg     sync.WaitGroup
}

func NewDispatchQueue(name string) DispatchQueue {
	return DispatchQueue{
		name: name,
	}
}

var InactiveError = fmt.Errorf("inactive dispatch queue")

// Enqueue pushes a job onto the queue.  When the job completes, the result
// is sent over the returned channel.
func (q *DispatchQueue) Enqueue(fn func() error) chan error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	j := job{
		fn: fn,
		ch: make(chan error, 1),
	}

	if !q.active {
		j.ch <- InactiveError
	} else {
		q.jobCh <- j
	}

	return j.ch
}

// Run enqueues a job and waits for it to complete.
func (q *DispatchQueue) Run(fn func() error) error {
	return <-q.Enqueue(fn)
}

// Start activates the queue.  A queue must be started before jobs can be
// enqueued to it.
func (q *DispatchQueue) Start() error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.active {
		return fmt.Errorf("dispatch queue started twice \"%s\"", q.name)
	}
	q.active = true

	jobCh := make(chan job, queueDepth)
	q.jobCh = jobCh

	stopCh := make(chan struct{})
	q.stopCh = stopCh

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		for {
			select {
			case j, ok := <-jobCh:
				if ok {
					err := j.fn()
					j.ch <- err
					close(j.ch)
				}

			case <-stopCh:
				return
			}
		}
	}()

	return nil
}

// Stop deactivates the queue.  Queued jobs fail with the specified cause.
// This blocks until the dispatch loop exits, so it must not be called from
// within a job.
func (q *DispatchQueue) Stop(cause error) error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if !q.active {
		return fmt.Errorf("dispatch queue stopped twice \"%s\"", q.name)
	}
	q.active = false

	close(q.stopCh)
	q.wg.Wait()

	close(q.jobCh)
	for j := range q.jobCh {
		j.ch <- cause
		close(j.ch)
	}

	q.jobCh = nil
	q.stopCh = nil

	return nil
}
