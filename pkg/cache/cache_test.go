package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/stretchr/testify/assert"
)

var (
	alice = disgord.NewSnowflake(42)
	bob   = disgord.NewSnowflake(7)
)

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestCache_InsertAndGet(t *testing.T) {
	c := &Cache{Now: fixedClock(1000)}

	_, ok := c.Get(alice)
	assert.False(t, ok, "unpopulated user")

	r := models.Reminder{ID: 1, UserID: alice, Message: "Buy milk", FireTimestamp: 2000}
	c.Insert(r)
	c.Insert(r)

	got, ok := c.Get(alice)
	assert.True(t, ok)
	assert.Equal(t, []models.Reminder{r}, got)

	// Same id, different value: both are kept.
	other := r
	other.Message = "Buy bread"
	c.Insert(other)
	got, _ = c.Get(alice)
	assert.Len(t, got, 2)
}

func TestCache_GetSweepsExpired(t *testing.T) {
	now := int64(1000)
	c := &Cache{Now: func() time.Time { return time.Unix(now, 0) }}

	soon := models.Reminder{ID: 1, UserID: alice, Message: "soon", FireTimestamp: 1005}
	later := models.Reminder{ID: 2, UserID: alice, Message: "later", FireTimestamp: 5000}
	c.Insert(soon)
	c.Insert(later)

	got, _ := c.Get(alice)
	assert.Len(t, got, 2)

	now = 1005
	got, ok := c.Get(alice)
	assert.True(t, ok, "user stays populated after a sweep")
	assert.Equal(t, []models.Reminder{later}, got)
}

func TestCache_Remove(t *testing.T) {
	c := &Cache{Now: fixedClock(1000)}
	a := models.Reminder{ID: 1, UserID: alice, Message: "a", FireTimestamp: 2000}
	b := models.Reminder{ID: 2, UserID: alice, Message: "b", FireTimestamp: 2000}
	d := models.Reminder{ID: 3, UserID: bob, Message: "d", FireTimestamp: 2000}
	c.BulkLoad([]models.Reminder{a, b, d})

	// Removing a value that does not match exactly is a no-op.
	changed := a
	changed.FireTimestamp = 3000
	c.RemoveExact(changed)
	got, _ := c.Get(alice)
	assert.Len(t, got, 2)

	c.RemoveExact(a)
	got, _ = c.Get(alice)
	assert.Equal(t, []models.Reminder{b}, got)

	c.RemoveByID(3)
	c.RemoveByID(3)
	got, ok := c.Get(bob)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_BulkLoadSweepsOnce(t *testing.T) {
	c := &Cache{Now: fixedClock(1000)}
	c.BulkLoad([]models.Reminder{
		{ID: 1, UserID: alice, Message: "past", FireTimestamp: 10},
		{ID: 2, UserID: alice, Message: "future", FireTimestamp: 2000},
		{ID: 2, UserID: alice, Message: "future", FireTimestamp: 2000},
	})

	got, ok := c.Get(alice)
	assert.True(t, ok)
	assert.Equal(t, []models.Reminder{{ID: 2, UserID: alice, Message: "future", FireTimestamp: 2000}}, got)
}

func TestCache_ZeroValue(t *testing.T) {
	var c Cache
	c.RemoveByID(1)
	c.Insert(models.Reminder{ID: 1, UserID: alice, FireTimestamp: time.Now().Add(time.Hour).Unix()})
	got, ok := c.Get(alice)
	assert.True(t, ok)
	assert.Len(t, got, 1)
}

func TestCache_Concurrent(t *testing.T) {
	c := New()
	fire := time.Now().Add(time.Hour).Unix()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			r := models.Reminder{ID: id, UserID: alice, FireTimestamp: fire}
			c.Insert(r)
			c.Get(alice)
			if id%2 == 0 {
				c.RemoveByID(id)
			}
		}(uint64(i))
	}
	wg.Wait()

	got, _ := c.Get(alice)
	assert.Len(t, got, 25)
}
