/*
 * © 2026 Beacon Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package taskqueue runs background tasks and reports their failures
// through the exception signal.
package taskqueue

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/internal/signal"
)

type Task func(ctx context.Context) error

type job struct {
	id   string
	name string
	task Task
}

type Queue struct {
	c      *config.Config
	hub    signal.Hub
	jobs   chan job
	wg     sync.WaitGroup
	closed sync.Once
	ctx    context.Context
	cancel context.CancelFunc
}

// New starts the given number of workers. Worker panics and task errors
// become exception events tagged with the task name; the queue keeps
// running.
func New(c *config.Config, hub signal.Hub, workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		c:      c,
		hub:    hub,
		jobs:   make(chan job, 100),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Submit enqueues a task and returns its job id.
func (q *Queue) Submit(name string, task Task) (string, error) {
	select {
	case <-q.ctx.Done():
		return "", errors.New("task queue is shut down")
	default:
	}
	id := uuid.NewString()
	select {
	case q.jobs <- job{id: id, name: name, task: task}:
		return id, nil
	case <-q.ctx.Done():
		return "", errors.New("task queue is shut down")
	}
}

// Shutdown stops accepting tasks and waits for queued ones to drain,
// bounded by the given context.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.closed.Do(q.cancel)
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case j := <-q.jobs:
			q.run(j)
		case <-q.ctx.Done():
			// drain what was accepted before shutdown
			for {
				select {
				case j := <-q.jobs:
					q.run(j)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) run(j job) {
	logger := q.c.Logger().With().Str("method", "taskqueue.run").Str("task", j.name).Str("id", j.id).Logger()
	defer func() {
		if recovered := recover(); recovered != nil {
			err := errors.Errorf("panic in task %s: %v", j.name, recovered)
			logger.Error().Err(err).Msg("recovered task panic")
			q.hub.Emit(signal.ExceptionEvent{Err: err, Task: j.name})
		}
	}()
	err := j.task(q.ctx)
	if err != nil {
		logger.Err(err).Msg("task failed")
		q.hub.Emit(signal.ExceptionEvent{Err: err, Task: j.name})
	}
}
