package remind

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/delay"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
)

// unitWords may follow a bare number as a separate argument, e.g. "10 mins".
var unitWords = map[string]bool{
	"s": true, "sec": true, "secs": true, "second": true, "seconds": true,
	"m": true, "min": true, "mins": true, "minute": true, "minutes": true,
	"h": true, "hr": true, "hrs": true, "hour": true, "hours": true,
	"d": true, "day": true, "days": true,
}

// Remind reminder command.
type Remind struct {
	svc *reminderservice.Service
	log *common.Logger
}

func Init(svc *reminderservice.Service, log *common.Logger) *Remind {
	return &Remind{svc: svc, log: log}
}

func (*Remind) Name() string {
	return "remind"
}

func (*Remind) Aliases() []string {
	return []string{"remindme", "re", "r"}
}

func (*Remind) Description() string {
	return "Register a reminder and receive it as a direct message once the delay has passed."
}

func (*Remind) Permission() common.PermissionLevel {
	return common.PermissionDefault
}

func (*Remind) Active() bool {
	return true
}

func (c *Remind) Execute(ctx context.Context, s common.MessageState) {
	rawDelay, message, ok := splitArgs(s.UserCommandArgs())
	if !ok {
		c.Help(s)
		return
	}

	r, d, err := c.svc.Create(ctx, s.UserID(), message, rawDelay)
	var perr *delay.ParseError
	switch {
	case errors.As(err, &perr):
		s.SendEmbed(invalidDelayEmbed())
		return
	case err != nil:
		c.log.Error("failed to create reminder:", err)
		s.Reply(fmt.Sprintf("Unexpected error: %s", err.Error()))
		return
	}

	s.SendEmbed(confirmEmbed(r, d))
}

func (c *Remind) Help(s common.MessageState) {
	cmd := s.Prefix + c.Name()
	fields := []*disgord.EmbedField{}

	// Command aliases.
	fields = append(fields, &disgord.EmbedField{
		Name:  "Aliases",
		Value: strings.Join(c.Aliases(), ", "),
	})

	// Delay units.
	fields = append(fields, &disgord.EmbedField{
		Name:  "[Delay] <number><unit>",
		Value: "Units: seconds, minutes, hours, days. Only the first letter counts.",
	})

	// Usage example.
	fields = append(fields, &disgord.EmbedField{
		Name:  "[Example] In ten minutes",
		Value: fmt.Sprintf("%s 10m take the pizza out", cmd),
	})

	// Usage example.
	fields = append(fields, &disgord.EmbedField{
		Name:  "[Example] With a spaced unit",
		Value: fmt.Sprintf("%s 2 days call grandma", cmd),
	})

	s.SendEmbed(&disgord.Embed{
		Title:       fmt.Sprintf("Command \"%s\" usage", c.Name()),
		Description: fmt.Sprintf("%s [delay] [message]", cmd),
		Color:       common.ColorDefault,
		Fields:      fields,
	})
}

// splitArgs separates the delay from the reminder message.
// The delay is the first argument, plus the second one if the first is a bare
// number and the second a unit word.
func splitArgs(args []string) (rawDelay, message string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}

	rawDelay, rest := args[0], args[1:]
	if isDigits(rawDelay) && len(rest) > 1 && unitWords[strings.ToLower(rest[0])] {
		rawDelay += " " + rest[0]
		rest = rest[1:]
	}

	message = strings.Join(rest, " ")
	return rawDelay, message, message != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func confirmEmbed(r models.Reminder, d delay.Delay) *disgord.Embed {
	return &disgord.Embed{
		Title:       "Reminder added!",
		Description: fmt.Sprintf("I'll check in on you in %s.", d),
		Color:       common.ColorConfirm,
		Footer: &disgord.EmbedFooter{
			Text: fmt.Sprintf("ID: %d", r.ID),
		},
	}
}

func invalidDelayEmbed() *disgord.Embed {
	return &disgord.Embed{
		Title:       "Error: Invalid time format",
		Description: "Valid format is: **<number><unit>**.\nValid units are: seconds, minutes, hours, days",
		Color:       common.ColorError,
		Footer: &disgord.EmbedFooter{
			Text: "Examples: 10s, 10 seconds, 10 mins",
		},
	}
}
