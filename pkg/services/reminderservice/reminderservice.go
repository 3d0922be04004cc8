// Package reminderservice owns the reminder lifecycle: it persists new
// reminders, keeps the cache in step with the store and runs one scheduler
// worker per pending reminder.
package reminderservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/cache"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/delay"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/store"
)

// ErrEmptyMessage is returned when a reminder is created without text.
var ErrEmptyMessage = errors.New("reminder message is empty")

// Options configures a Service.
type Options struct {
	Store     store.Store
	Deliverer Deliverer
	Logger    *common.Logger
	// Interval is the worker poll interval. Defaults to one second.
	Interval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service is the reminder application context shared by all commands.
type Service struct {
	store     store.Store
	cache     *cache.Cache
	scheduler *Scheduler
	log       *common.Logger
	now       func() time.Time
}

// New wires a store, a fresh cache and a scheduler together.
// No worker runs until Bootstrap or Create is called.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = common.NopLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &cache.Cache{Now: now}
	sched := NewScheduler(opts.Store, c, opts.Deliverer, log, opts.Interval)
	sched.now = now

	return &Service{
		store:     opts.Store,
		cache:     c,
		scheduler: sched,
		log:       log,
		now:       now,
	}
}

// Bootstrap loads every stored reminder into the cache and starts its worker.
// It must run before the command listener is attached.
// Reminders that came due while the bot was offline fire on their first check.
func (s *Service) Bootstrap(ctx context.Context) (int, error) {
	reminders, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("bootstrap reminders: %w", err)
	}

	s.cache.BulkLoad(reminders)
	for _, r := range reminders {
		s.scheduler.Spawn(r)
	}
	s.log.Info("scheduled", len(reminders), "stored reminders")
	return len(reminders), nil
}

// Create parses rawDelay, stores a new reminder and schedules it.
// An unknown unit yields a reminder that fires immediately.
func (s *Service) Create(ctx context.Context, userID disgord.Snowflake, message, rawDelay string) (models.Reminder, delay.Delay, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Reminder{}, delay.Delay{}, ErrEmptyMessage
	}

	d, err := delay.Parse(rawDelay)
	if err != nil {
		return models.Reminder{}, d, err
	}

	r := models.NewReminder(userID, message, s.now().Add(d.Duration()))
	if err := s.store.Insert(ctx, r); err != nil {
		return models.Reminder{}, d, fmt.Errorf("create reminder: %w", err)
	}
	s.cache.Insert(r)
	s.scheduler.Spawn(r)

	s.log.Debug("created reminder", r.ID, "for user", userID, "firing in", d)
	return r, d, nil
}

// Delete cancels and removes every reminder with the given id.
// Deleting an id that does not exist is not an error.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	cancelled := s.scheduler.Cancel(id)
	s.cache.RemoveByID(id)
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete reminder %d: %w", id, err)
	}
	s.log.Debug("deleted reminder", id, "cancelled workers:", cancelled)
	return nil
}

// List returns the user's pending reminders ordered by fire time.
// The cache answers when it knows the user; otherwise the store is read
// and the result cached.
func (s *Service) List(ctx context.Context, userID disgord.Snowflake) ([]models.Reminder, error) {
	reminders, ok := s.cache.Get(userID)
	if !ok {
		stored, err := s.store.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list reminders: %w", err)
		}
		s.cache.BulkLoad(stored)
		// BulkLoad only creates an entry for users with rows.
		reminders, _ = s.cache.Get(userID)
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].FireTimestamp != reminders[j].FireTimestamp {
			return reminders[i].FireTimestamp < reminders[j].FireTimestamp
		}
		return reminders[i].ID < reminders[j].ID
	})
	return reminders, nil
}

// Autocomplete returns "<message> (ID: <id>)" for each of the user's
// reminders whose message starts with partial, ignoring case.
func (s *Service) Autocomplete(ctx context.Context, userID disgord.Snowflake, partial string) ([]string, error) {
	matches, err := s.Match(ctx, userID, partial)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(matches))
	for _, r := range matches {
		labels = append(labels, r.Label())
	}
	return labels, nil
}

// Match returns the user's reminders whose message starts with partial, ignoring case.
func (s *Service) Match(ctx context.Context, userID disgord.Snowflake, partial string) ([]models.Reminder, error) {
	reminders, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefix := strings.ToLower(partial)
	var out []models.Reminder
	for _, r := range reminders {
		if strings.HasPrefix(strings.ToLower(r.Message), prefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Pending returns the number of workers waiting for their fire time.
func (s *Service) Pending() int {
	return s.scheduler.Pending()
}

// Close stops all workers. Reminders that have not fired stay in the store.
func (s *Service) Close() {
	s.scheduler.Stop()
}
