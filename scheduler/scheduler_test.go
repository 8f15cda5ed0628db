package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func newTestScheduler(t *testing.T, tick time.Duration) *Scheduler {
	t.Helper()
	s, err := New(WithTick(tick))
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}
	return s
}

func TestRegisterValidation(t *testing.T) {
	s := newTestScheduler(t, time.Minute)

	if err := s.Register(&Task{Name: "", Fn: func(ctx context.Context) error { return nil }, Interval: time.Minute}); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("Expected ErrInvalidTask for empty name, got %v", err)
	}
	if err := s.Register(&Task{Name: "no-cadence", Fn: func(ctx context.Context) error { return nil }}); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("Expected ErrInvalidTask for missing cadence, got %v", err)
	}

	task := &Task{Name: "ok", Fn: func(ctx context.Context) error { return nil }, Interval: time.Minute, Enabled: true}
	if err := s.Register(task); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := s.Register(task); !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("Expected ErrDuplicateTask, got %v", err)
	}
}

func TestStartIsNonBlocking(t *testing.T) {
	s := newTestScheduler(t, time.Minute)

	release := make(chan struct{})
	err := s.Register(&Task{
		Name:           "slow-immediate",
		Interval:       time.Hour,
		Enabled:        true,
		RunImmediately: true,
		Fn: func(ctx context.Context) error {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	started := time.Now()
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	elapsed := time.Since(started)
	if elapsed > time.Second {
		t.Fatalf("Start must not block on run-immediately bodies, took %v", elapsed)
	}

	close(release)
	s.Stop()
}

func TestIntervalTaskFiresRepeatedly(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var runs atomic.Int32
	err := s.Register(&Task{
		Name:     "counter",
		Interval: 15 * time.Millisecond,
		Enabled:  true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if runs.Load() < 2 {
		t.Fatalf("Expected repeated executions, got %d", runs.Load())
	}
}

func TestDisabledTaskNeverFires(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var runs atomic.Int32
	err := s.Register(&Task{
		Name:     "disabled",
		Interval: 10 * time.Millisecond,
		Enabled:  false,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if runs.Load() != 0 {
		t.Fatalf("Disabled task must not fire, got %d runs", runs.Load())
	}
}

func TestTimeoutCancelsLongBody(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var cancelled atomic.Bool
	err := s.Register(&Task{
		Name:           "long-body",
		Interval:       time.Hour,
		Enabled:        true,
		RunImmediately: true,
		Timeout:        50 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			select {
			case <-time.After(10 * time.Second):
				return nil
			case <-ctx.Done():
				cancelled.Store(true)
				return ctx.Err()
			}
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status := s.Status()["long-body"]
		if !status.Running && !status.LastRun.IsZero() {
			if !status.NextRun.After(status.LastRun) {
				t.Fatal("Expected next_run recomputed after cancelled run")
			}
			s.Stop()
			if !cancelled.Load() {
				t.Fatal("Expected body to observe cancellation")
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.Stop()
	t.Fatal("Task stuck running past its timeout")
}

func TestNextRunRecomputedAfterFailure(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var runs atomic.Int32
	err := s.Register(&Task{
		Name:     "always-fails",
		Interval: 20 * time.Millisecond,
		Enabled:  true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("body failure")
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	// No-stall law: a failing task keeps firing.
	if runs.Load() < 2 {
		t.Fatalf("Expected failing task to keep firing, got %d runs", runs.Load())
	}

	status := s.Status()["always-fails"]
	if !status.NextRun.After(status.LastRun) {
		t.Fatal("Expected next_run strictly after last run start")
	}
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var runs atomic.Int32
	err := s.Register(&Task{
		Name:     "panics",
		Interval: 20 * time.Millisecond,
		Enabled:  true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			panic("task body exploded")
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	if runs.Load() < 2 {
		t.Fatalf("Expected panicking task to keep firing, got %d runs", runs.Load())
	}
}

func TestStopAwaitsInFlightUnits(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var finished atomic.Bool
	err := s.Register(&Task{
		Name:           "in-flight",
		Interval:       time.Hour,
		Enabled:        true,
		RunImmediately: true,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			finished.Store(true)
			return ctx.Err()
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	if !finished.Load() {
		t.Fatal("Stop must await in-flight units")
	}
}

func TestOffloadedTaskRuns(t *testing.T) {
	s := newTestScheduler(t, 10*time.Millisecond)

	var runs atomic.Int32
	err := s.Register(&Task{
		Name:           "offloaded",
		Interval:       time.Hour,
		Enabled:        true,
		RunImmediately: true,
		Offload:        true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if runs.Load() != 1 {
		t.Fatalf("Expected 1 offloaded run, got %d", runs.Load())
	}
}

func TestDailyCadenceRollsOver(t *testing.T) {
	loc := time.UTC
	task := &Task{
		Name:    "daily",
		DailyAt: &DailyTime{Hour: 3, Minute: 30, Location: loc},
	}

	reference := time.Date(2024, 6, 1, 2, 0, 0, 0, loc)
	next := task.nextAfter(reference, time.Minute)
	want := time.Date(2024, 6, 1, 3, 30, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("Expected %v, got %v", want, next)
	}

	// Past today's slot: rolls to tomorrow.
	reference = time.Date(2024, 6, 1, 4, 0, 0, 0, loc)
	next = task.nextAfter(reference, time.Minute)
	want = time.Date(2024, 6, 2, 3, 30, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("Expected rollover to %v, got %v", want, next)
	}
}

func TestStatusSnapshot(t *testing.T) {
	s := newTestScheduler(t, time.Minute)

	err := s.Register(&Task{
		Name:     "status-task",
		Interval: time.Hour,
		Enabled:  true,
		Fn:       func(ctx context.Context) error { return nil },
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	status := s.Status()
	st, ok := status["status-task"]
	if !ok {
		t.Fatal("Expected task in status map")
	}
	if !st.Enabled || st.Running {
		t.Fatalf("Unexpected snapshot: %+v", st)
	}
	if st.NextRun.IsZero() {
		t.Fatal("Expected next_run scheduled at registration")
	}
	if st.Overdue {
		t.Fatal("Fresh task must not be overdue")
	}
}
