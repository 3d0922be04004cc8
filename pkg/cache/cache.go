// Package cache keeps an in-memory index of pending reminders per user.
//
// The cache mirrors the store eventually and is never the only record of a
// reminder. Reading a user's reminders prunes expired entries from the view
// only; the store row is removed by the scheduler once the reminder fired.
package cache

import (
	"sync"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/models"
)

// Cache maps users to their pending reminders. The zero value is ready to use.
type Cache struct {
	mu      sync.Mutex
	entries map[disgord.Snowflake][]models.Reminder

	// Now defaults to time.Now.
	Now func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cache) init() {
	if c.entries == nil {
		c.entries = make(map[disgord.Snowflake][]models.Reminder)
	}
}

// Get returns a copy of the user's reminders after sweeping expired entries.
// ok is false if the user was never populated, in which case callers fall back to the store.
func (c *Cache) Get(userID disgord.Snowflake) (reminders []models.Reminder, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.sweepLocked()

	list, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	return append([]models.Reminder{}, list...), true
}

// Insert adds the reminder unless an equal one is already cached.
func (c *Cache) Insert(r models.Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.insertLocked(r)
}

// BulkLoad inserts all reminders and sweeps once at the end.
func (c *Cache) BulkLoad(reminders []models.Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	for _, r := range reminders {
		c.insertLocked(r)
	}
	c.sweepLocked()
}

// RemoveExact removes entries equal to r from its owner's set.
func (c *Cache) RemoveExact(r models.Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()

	list, ok := c.entries[r.UserID]
	if !ok {
		return
	}
	c.entries[r.UserID] = retain(list, func(x models.Reminder) bool { return x != r })
}

// RemoveByID removes entries with the given id from every user.
func (c *Cache) RemoveByID(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()

	for user, list := range c.entries {
		c.entries[user] = retain(list, func(x models.Reminder) bool { return x.ID != id })
	}
}

func (c *Cache) insertLocked(r models.Reminder) {
	list := c.entries[r.UserID]
	for _, x := range list {
		if x == r {
			return
		}
	}
	c.entries[r.UserID] = append(list, r)
}

// sweepLocked drops reminders whose fire time is not in the future.
func (c *Cache) sweepLocked() {
	now := c.now().Unix()
	for user, list := range c.entries {
		c.entries[user] = retain(list, func(x models.Reminder) bool { return x.FireTimestamp > now })
	}
}

func retain(list []models.Reminder, keep func(models.Reminder) bool) []models.Reminder {
	out := list[:0]
	for _, r := range list {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
