package reminderservice

import (
	"context"
	"sync"
	"time"

	"github.com/qysp/reminderbot/pkg/cache"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/store"
	"go.uber.org/zap"
)

// State is the lifecycle state of a reminder worker.
type State int

// Worker states. Cancelled and Fired are terminal.
const (
	Scheduled State = iota
	Cancelled
	Fired
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Cancelled:
		return "cancelled"
	case Fired:
		return "fired"
	default:
		return "unknown"
	}
}

// Deliverer sends a due reminder to its owner.
type Deliverer interface {
	Deliver(ctx context.Context, r models.Reminder) error
}

type worker struct {
	reminder models.Reminder
	// state is guarded by Scheduler.mu.
	state  State
	cancel chan struct{}
}

// Scheduler runs one worker goroutine per pending reminder.
// Each worker polls the clock on a fixed interval, delivers the reminder once
// it is due and then removes it from the store and the cache.
type Scheduler struct {
	store     store.Store
	cache     *cache.Cache
	deliverer Deliverer
	log       *common.Logger
	interval  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	workers map[uint64][]*worker

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler. Workers poll every interval.
func NewScheduler(st store.Store, c *cache.Cache, d Deliverer, log *common.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Scheduler{
		store:     st,
		cache:     c,
		deliverer: d,
		log:       log,
		interval:  interval,
		now:       time.Now,
		workers:   make(map[uint64][]*worker),
		ctx:       ctx,
		stop:      stop,
	}
}

// Spawn starts a worker bound to the reminder.
// Reminders whose fire time already passed are delivered on the first check.
func (s *Scheduler) Spawn(r models.Reminder) {
	w := &worker{reminder: r, cancel: make(chan struct{})}

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.workers[r.ID] = append(s.workers[r.ID], w)
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(w)
}

// Cancel stops every scheduled worker bound to id and returns how many were stopped.
// A worker that already started delivering is not affected.
func (s *Scheduler) Cancel(id uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, w := range s.workers[id] {
		if w.state != Scheduled {
			continue
		}
		w.state = Cancelled
		close(w.cancel)
		n++
	}
	return n
}

// Pending returns the number of workers still waiting for their fire time.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, list := range s.workers {
		for _, w := range list {
			if w.state == Scheduled {
				n++
			}
		}
	}
	return n
}

// Stop ends all workers and waits for them. Scheduled reminders stay in the
// store and are picked up again by the next Bootstrap.
func (s *Scheduler) Stop() {
	s.stop()
	s.wg.Wait()
}

func (s *Scheduler) run(w *worker) {
	defer s.wg.Done()
	defer s.forget(w)

	log := s.log.With(
		zap.Uint64("reminder_id", w.reminder.ID),
		zap.Uint64("user_id", uint64(w.reminder.UserID)),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if w.reminder.Due(s.now()) && s.markFired(w) {
			s.fire(log, w.reminder)
			return
		}

		select {
		case <-s.ctx.Done():
			return
		case <-w.cancel:
			log.Debug("reminder cancelled before firing")
			return
		case <-ticker.C:
		}
	}
}

// markFired moves a scheduled worker to Fired. It fails if the worker was cancelled.
func (s *Scheduler) markFired(w *worker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.state != Scheduled {
		return false
	}
	w.state = Fired
	return true
}

func (s *Scheduler) fire(log *common.Logger, r models.Reminder) {
	if err := s.deliverer.Deliver(s.ctx, r); err != nil {
		log.Error("failed to deliver reminder:", err)
		return
	}
	log.Debug("reminder delivered")

	// The row may already be gone if the reminder was removed while delivering.
	if err := s.store.DeleteExact(s.ctx, r); err != nil {
		log.Error("failed to remove delivered reminder:", err)
	}
	s.cache.RemoveExact(r)
}

func (s *Scheduler) forget(w *worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.workers[w.reminder.ID]
	for i, x := range list {
		if x == w {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(s.workers, w.reminder.ID)
	} else {
		s.workers[w.reminder.ID] = list
	}
}
