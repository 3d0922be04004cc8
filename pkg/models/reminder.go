package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/andersfylling/disgord"
)

// Reminder represents a pending one-shot notification.
// Reminders are compared by value; two reminders are the same reminder only
// if all four fields match.
type Reminder struct {
	ID            uint64
	UserID        disgord.Snowflake
	Message       string
	FireTimestamp int64
}

// NewReminder creates a reminder with a random ID.
// IDs stay below 2^63 so every backend can store them as a signed 64 bit integer.
func NewReminder(userID disgord.Snowflake, message string, fireAt time.Time) Reminder {
	return Reminder{
		ID:            uint64(rand.Int63n(math.MaxInt64)) + 1,
		UserID:        userID,
		Message:       message,
		FireTimestamp: fireAt.Unix(),
	}
}

// FireTime returns the fire timestamp as a time.Time.
func (r Reminder) FireTime() time.Time {
	return time.Unix(r.FireTimestamp, 0)
}

// Due reports whether the reminder should fire at now.
func (r Reminder) Due(now time.Time) bool {
	return now.Unix() >= r.FireTimestamp
}

// Label is the autocomplete representation of a reminder.
func (r Reminder) Label() string {
	return fmt.Sprintf("%s (ID: %d)", r.Message, r.ID)
}
