package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sixmovies/actorpop/internal/logging"
)

func TestScheduler_RunsIntervalTask(t *testing.T) {
	var runs int32
	s := NewScheduler(logging.NewDefaultLogger())

	err := s.AddIntervalTask("test-task", 50*time.Millisecond, time.Second, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("AddIntervalTask: %v", err)
	}

	s.Start()
	defer s.Stop(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&runs) == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if atomic.LoadInt32(&runs) == 0 {
		t.Errorf("expected interval task to run at least once within the deadline")
	}
}

func TestScheduler_IsRunning(t *testing.T) {
	s := NewScheduler(logging.NewDefaultLogger())
	if s.IsRunning() {
		t.Errorf("new scheduler should not be running")
	}
	s.Start()
	if !s.IsRunning() {
		t.Errorf("scheduler should be running after Start")
	}
	s.Stop(context.Background())
	if s.IsRunning() {
		t.Errorf("scheduler should not be running after Stop")
	}
}
