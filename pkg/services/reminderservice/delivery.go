package reminderservice

import (
	"context"
	"fmt"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/nleeper/goment"
	"github.com/qysp/reminderbot/pkg/models"
	"golang.org/x/time/rate"
)

// ReminderColor is the embed color of delivered reminders.
const ReminderColor = 0xC5B875

// Delivery stages reported in a DeliveryError.
const (
	StageRate = "rate"
	StageDM   = "dm"
	StageSend = "send"
)

// DeliveryError is returned when a reminder could not reach its owner.
type DeliveryError struct {
	UserID disgord.Snowflake
	Stage  string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver reminder to %s (%s): %v", e.UserID, e.Stage, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// DMSender opens direct message channels and posts embeds to them.
type DMSender interface {
	CreateDM(userID disgord.Snowflake) (disgord.Snowflake, error)
	SendEmbed(channelID disgord.Snowflake, embed *disgord.Embed) error
}

// DMDeliverer delivers reminders as a direct message embed.
// Outgoing messages share one rate limiter so a burst of due reminders
// does not trip Discord's rate limits.
type DMDeliverer struct {
	sender  DMSender
	limiter *rate.Limiter
}

// NewDMDeliverer allows perSecond deliveries per second with the given burst.
// A non-positive perSecond disables the limit.
func NewDMDeliverer(sender DMSender, perSecond float64, burst int) *DMDeliverer {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &DMDeliverer{
		sender:  sender,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Deliver sends the reminder embed to the reminder's owner.
func (d *DMDeliverer) Deliver(ctx context.Context, r models.Reminder) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return &DeliveryError{UserID: r.UserID, Stage: StageRate, Err: err}
	}

	channelID, err := d.sender.CreateDM(r.UserID)
	if err != nil {
		return &DeliveryError{UserID: r.UserID, Stage: StageDM, Err: err}
	}

	if err := d.sender.SendEmbed(channelID, ReminderEmbed(r)); err != nil {
		return &DeliveryError{UserID: r.UserID, Stage: StageSend, Err: err}
	}
	return nil
}

// ReminderEmbed builds the message shown when a reminder fires.
func ReminderEmbed(r models.Reminder) *disgord.Embed {
	return &disgord.Embed{
		Title:       "Reminder",
		Description: r.Message,
		Color:       ReminderColor,
		Footer: &disgord.EmbedFooter{
			Text: "You asked to be reminded " + FormatFireTime(r.FireTimestamp),
		},
	}
}

// FormatFireTime renders a unix timestamp like "on the 14th November 2023 at 22:13:20 UTC".
func FormatFireTime(ts int64) string {
	g, err := goment.New(time.Unix(ts, 0).UTC())
	if err != nil {
		return fmt.Sprintf("at %d", ts)
	}
	return fmt.Sprintf("on the %s at %s UTC", g.Format("Do MMMM YYYY"), g.Format("HH:mm:ss"))
}
