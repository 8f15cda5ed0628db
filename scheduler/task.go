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


package scheduler

import (
	"context"
	"time"
)

// TaskFunc is a job body. Bodies must honor ctx cancellation; the scheduler
// stops waiting at the timeout even if a body ignores its context.
type TaskFunc func(ctx context.Context) error

// DailyTime is a fixed time-of-day cadence in a named timezone.
type DailyTime struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Task describes one recurring job. Exactly one of Interval or DailyAt must
// be set.
type Task struct {
	// Name uniquely identifies the task in the registry and in logs.
	Name string

	// Interval schedules the task a fixed duration after each run start.
	Interval time.Duration

	// DailyAt schedules the task once per day at a fixed local time.
	// Rolls to the next day once today's slot has passed.
	DailyAt *DailyTime

	// Fn is the job body.
	Fn TaskFunc

	// Enabled gates execution; disabled tasks keep their schedule but
	// never fire.
	Enabled bool

	// RunImmediately fires the task once at scheduler start as an
	// independent background unit.
	RunImmediately bool

	// Timeout, when positive, cancels the run's context after the given
	// duration.
	Timeout time.Duration

	// Offload runs the body on the worker pool instead of a fresh
	// goroutine, for CPU-bound or blocking bodies.
	Offload bool
}

// nextAfter computes the task's next run strictly after reference.
func (t *Task) nextAfter(reference time.Time, fallback time.Duration) time.Time {
	if t.DailyAt != nil {
		loc := t.DailyAt.Location
		if loc == nil {
			loc = time.UTC
		}
		local := reference.In(loc)
		candidate := time.Date(local.Year(), local.Month(), local.Day(),
			t.DailyAt.Hour, t.DailyAt.Minute, 0, 0, loc)
		if !candidate.After(reference) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate
	}

	interval := t.Interval
	if interval <= 0 {
		interval = fallback
	}
	return reference.Add(interval)
}
