package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLocker struct {
	acquired bool
	err      error
	acquires []string
	releases []string
}

func (f *fakeLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	f.acquires = append(f.acquires, name)
	return f.acquired, f.err
}

func (f *fakeLocker) Release(ctx context.Context, name string) error {
	f.releases = append(f.releases, name)
	return nil
}

func TestLockTTL_TracksInterval(t *testing.T) {
	cases := []struct {
		interval time.Duration
		expected time.Duration
	}{
		{5 * time.Minute, 4*time.Minute + 30*time.Second},
		{time.Minute, 30 * time.Second},
		{24 * time.Hour, 24*time.Hour - 30*time.Second},
		{30 * time.Second, 10 * time.Second},
		{5 * time.Second, 10 * time.Second},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, lockTTL(tc.interval), "interval %s", tc.interval)
	}
}

func TestTickRunsDueTask(t *testing.T) {
	s := New(nil)

	runs := 0
	s.Register("sweep", time.Minute, func(ctx context.Context) error {
		runs++
		return nil
	})
	s.tasks[0].NextRun = time.Now().Add(-time.Second)

	now := time.Now()
	s.tick(now)

	assert.Equal(t, 1, runs)
	assert.Equal(t, int64(1), s.tasks[0].RunCount)
	assert.Equal(t, now, s.tasks[0].LastRun)
	assert.Equal(t, now.Add(time.Minute), s.tasks[0].NextRun)
}

func TestTickSkipsTaskNotYetDue(t *testing.T) {
	s := New(nil)

	runs := 0
	s.Register("sweep", time.Hour, func(ctx context.Context) error {
		runs++
		return nil
	})

	s.tick(time.Now())

	assert.Equal(t, 0, runs)
	assert.Equal(t, int64(0), s.tasks[0].RunCount)
}

func TestRunRecordsHandlerError(t *testing.T) {
	s := New(nil)

	boom := errors.New("sweep failed")
	s.Register("sweep", time.Minute, func(ctx context.Context) error {
		return boom
	})

	s.run(s.tasks[0], time.Now())

	assert.Equal(t, boom, s.tasks[0].LastError)
	assert.Equal(t, int64(1), s.tasks[0].RunCount)
}

func TestRunClearsErrorAfterRecovery(t *testing.T) {
	s := New(nil)

	fail := true
	s.Register("sweep", time.Minute, func(ctx context.Context) error {
		if fail {
			return errors.New("transient")
		}
		return nil
	})

	s.run(s.tasks[0], time.Now())
	assert.Error(t, s.tasks[0].LastError)

	fail = false
	s.run(s.tasks[0], time.Now())
	assert.NoError(t, s.tasks[0].LastError)
	assert.Equal(t, int64(2), s.tasks[0].RunCount)
}

func TestRunSkipsWhenLockNotAcquired(t *testing.T) {
	locker := &fakeLocker{acquired: false}
	s := New(locker)

	runs := 0
	s.Register("sweep", time.Minute, func(ctx context.Context) error {
		runs++
		return nil
	})

	now := time.Now()
	s.run(s.tasks[0], now)

	assert.Equal(t, 0, runs)
	assert.Equal(t, []string{"sweep"}, locker.acquires)
	assert.Empty(t, locker.releases)
	// The task still waits a full interval before the next attempt
	assert.Equal(t, now.Add(time.Minute), s.tasks[0].NextRun)
}

func TestRunAcquiresAndReleasesLock(t *testing.T) {
	locker := &fakeLocker{acquired: true}
	s := New(locker)

	runs := 0
	s.Register("sweep", time.Minute, func(ctx context.Context) error {
		runs++
		return nil
	})

	s.run(s.tasks[0], time.Now())

	assert.Equal(t, 1, runs)
	assert.Equal(t, []string{"sweep"}, locker.acquires)
	assert.Equal(t, []string{"sweep"}, locker.releases)
}

func TestStartStop(t *testing.T) {
	s := New(nil)
	s.Register("sweep", time.Hour, func(ctx context.Context) error { return nil })

	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
