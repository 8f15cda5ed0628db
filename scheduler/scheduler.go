// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package scheduler owns the registry of named recurring jobs and runs them
// on their cadence.
//
// Contracts the rest of the system depends on:
//
//   - Start never blocks on job bodies; run-immediately units fire as
//     independent background units tracked in a handle registry.
//   - Every execution attempt recomputes next_run, success or failure, so a
//     failing task can never stall its own future.
//   - Stop cancels and awaits every in-flight unit before returning.
//   - Panics inside a body are recovered and logged with task identity.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	defaultTick     = time.Minute
	defaultPoolSize = 4
)

// TaskStatus is one task's snapshot on the status surface.
type TaskStatus struct {
	Enabled bool
	Running bool
	LastRun time.Time
	NextRun time.Time
	Overdue bool
}

type taskState struct {
	task    *Task
	lastRun time.Time
	nextRun time.Time
	running bool
}

// unitHandle tracks one background execution unit so shutdown can enumerate,
// cancel, and await everything in flight.
type unitHandle struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Scheduler runs registered tasks on a poll loop.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*taskState
	order   []string
	handles map[uint64]*unitHandle
	nextUID uint64

	tick   time.Duration
	pool   *ants.Pool
	logger *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	loopWG  sync.WaitGroup
	unitWG  sync.WaitGroup
	started bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick overrides the poll period. Default one minute.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithPoolSize sets the offload worker pool size. Default 4.
func WithPoolSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			pool, err := ants.NewPool(n)
			if err == nil {
				s.pool.Release()
				s.pool = pool
			}
		}
	}
}

// New creates a Scheduler. Returns an error if the offload pool cannot be
// created.
func New(opts ...Option) (*Scheduler, error) {
	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create offload pool: %w", err)
	}

	s := &Scheduler{
		tasks:   make(map[string]*taskState),
		handles: make(map[uint64]*unitHandle),
		tick:    defaultTick,
		pool:    pool,
		logger:  slog.Default().With("component", "scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register adds a task to the registry. Tasks can be registered before or
// after Start; a task registered after Start is picked up on the next tick.
func (s *Scheduler) Register(task *Task) error {
	if task == nil || task.Name == "" || task.Fn == nil {
		return ErrInvalidTask
	}
	if task.Interval <= 0 && task.DailyAt == nil {
		return fmt.Errorf("%w: %s has no cadence", ErrInvalidTask, task.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, task.Name)
	}

	state := &taskState{
		task:    task,
		nextRun: task.nextAfter(time.Now(), s.tick),
	}
	s.tasks[task.Name] = state
	s.order = append(s.order, task.Name)

	s.logger.Debug("task registered", "task", task.Name, "next_run", state.nextRun)
	return nil
}

// Start launches the poll loop and fires run-immediately tasks as background
// units. It returns before any of those units complete; non-blocking startup
// is a hard contract.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(context.Background())

	var immediate []*taskState
	for _, name := range s.order {
		state := s.tasks[name]
		if state.task.RunImmediately && state.task.Enabled {
			immediate = append(immediate, state)
		}
	}
	s.mu.Unlock()

	for _, state := range immediate {
		s.launch(state, time.Now())
	}

	s.loopWG.Add(1)
	go s.loop()

	s.logger.Info("scheduler started", "tasks", len(s.order), "immediate", len(immediate))
	return nil
}

// Stop cancels the loop and every in-flight unit, then waits for all of them.
// No orphaned work survives teardown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	handles := make([]*unitHandle, 0, len(s.handles))
	for _, h := range s.handles {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	cancel()
	for _, h := range handles {
		h.cancel()
	}

	s.loopWG.Wait()
	s.unitWG.Wait()
	s.pool.Release()

	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	s.logger.Info("scheduler stopped")
}

// Status returns a snapshot of every task for the status surface.
func (s *Scheduler) Status() map[string]TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	out := make(map[string]TaskStatus, len(s.tasks))
	for name, state := range s.tasks {
		out[name] = TaskStatus{
			Enabled: state.task.Enabled,
			Running: state.running,
			LastRun: state.lastRun,
			NextRun: state.nextRun,
			Overdue: state.task.Enabled && !state.running && state.nextRun.Before(now),
		}
	}
	return out
}

// SetEnabled toggles a task without unregistering it.
func (s *Scheduler) SetEnabled(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.tasks[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	state.task.Enabled = enabled
	return nil
}

// loop is the poll loop. Loop-level failures never kill the loop; it sleeps
// a second and continues.
func (s *Scheduler) loop() {
	defer s.loopWG.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			s.dispatchDue(now)
		}
	}
}

func (s *Scheduler) dispatchDue(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler loop recovered from panic", "panic", r)
			time.Sleep(time.Second)
		}
	}()

	s.mu.Lock()
	var due []*taskState
	for _, name := range s.order {
		state := s.tasks[name]
		if state.task.Enabled && !state.running && !state.nextRun.After(now) {
			due = append(due, state)
		}
	}
	s.mu.Unlock()

	for _, state := range due {
		s.launch(state, now)
	}
}

// launch runs one task as a tracked background unit.
func (s *Scheduler) launch(state *taskState, start time.Time) {
	s.mu.Lock()
	if state.running {
		s.mu.Unlock()
		return
	}
	state.running = true
	state.lastRun = start

	runCtx, runCancel := context.WithCancel(s.ctx)
	uid := s.nextUID
	s.nextUID++
	handle := &unitHandle{
		name:   state.task.Name,
		cancel: runCancel,
		done:   make(chan struct{}),
	}
	s.handles[uid] = handle
	s.unitWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.unitWG.Done()
		defer close(handle.done)
		defer runCancel()

		err := s.execute(runCtx, state.task)
		if err != nil {
			s.logger.Error("task failed", "task", state.task.Name, "err", err)
		} else {
			s.logger.Debug("task completed", "task", state.task.Name,
				"duration", time.Since(start))
		}

		// No-stall law: recompute next_run on every attempt, success or
		// failure, strictly after the start of this run.
		s.mu.Lock()
		state.running = false
		state.nextRun = state.task.nextAfter(start, s.tick)
		if !state.nextRun.After(start) {
			state.nextRun = start.Add(s.tick)
		}
		delete(s.handles, uid)
		s.mu.Unlock()
	}()
}

// execute runs the body with optional timeout and offload, recovering
// panics. When the timeout elapses the unit is considered finished even if
// a non-cooperative body is still running; its context is cancelled and the
// result discarded.
func (s *Scheduler) execute(ctx context.Context, task *Task) error {
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	body := func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("task %s panicked: %v", task.Name, r)
			}
		}()
		done <- task.Fn(ctx)
	}

	if task.Offload {
		if err := s.pool.Submit(body); err != nil {
			return fmt.Errorf("offload submit failed: %w", err)
		}
	} else {
		go body()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("task %s cancelled: %w", task.Name, ctx.Err())
	}
}
