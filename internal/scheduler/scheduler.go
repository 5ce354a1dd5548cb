package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/smartcms/smartcontent/pkg/logger"
)

// Task is a registered periodic job
type Task struct {
	Name      string
	Interval  time.Duration
	Handler   func(ctx context.Context) error
	LastRun   time.Time
	NextRun   time.Time
	RunCount  int64
	LastError error
}

// Scheduler runs registered tasks on their intervals from a single
// background goroutine. With a Locker configured, each run is guarded by a
// per-task leader lock so only one instance executes a sweep.
type Scheduler struct {
	tasks  []*Task
	mu     sync.RWMutex
	locker Locker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// New creates a scheduler. locker may be nil (no cross-instance guard).
func New(locker Locker) *Scheduler {
	return &Scheduler{
		tasks:  make([]*Task, 0),
		locker: locker,
		stop:   make(chan struct{}),
	}
}

// Register adds a periodic task
func (s *Scheduler) Register(name string, interval time.Duration, handler func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Handler:  handler,
		NextRun:  time.Now().Add(interval),
	})

	logger.GetLogger().Info().
		Str("task", name).
		Dur("interval", interval).
		Msg("scheduled task registered")
}

// Start launches the background loop
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.tick(now)
			}
		}
	}()
	logger.GetLogger().Info().Msg("scheduler started")
}

// Stop shuts the scheduler down and waits for the loop to exit
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	logger.GetLogger().Info().Msg("scheduler stopped")
}

// tick runs every task that is due
func (s *Scheduler) tick(now time.Time) {
	s.mu.RLock()
	tasks := make([]*Task, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.RUnlock()

	for _, task := range tasks {
		if now.Before(task.NextRun) {
			continue
		}
		s.run(task, now)
	}
}

func (s *Scheduler) run(task *Task, now time.Time) {
	ctx := context.Background()

	if s.locker != nil {
		acquired, err := s.locker.Acquire(ctx, task.Name, task.Interval)
		if err != nil {
			logger.GetLogger().Error().Err(err).Str("task", task.Name).Msg("scheduler lock error")
			return
		}
		if !acquired {
			// Another instance owns this run
			task.NextRun = now.Add(task.Interval)
			return
		}
		defer func() {
			if err := s.locker.Release(ctx, task.Name); err != nil {
				logger.GetLogger().Warn().Err(err).Str("task", task.Name).Msg("scheduler lock release failed")
			}
		}()
	}

	logger.GetLogger().Info().Str("task", task.Name).Msg("running scheduled task")

	if err := task.Handler(ctx); err != nil {
		logger.GetLogger().Error().Err(err).Str("task", task.Name).Msg("scheduled task error")
		task.LastError = err
	} else {
		task.LastError = nil
	}

	task.LastRun = now
	task.NextRun = now.Add(task.Interval)
	task.RunCount++
}
