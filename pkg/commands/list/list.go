package list

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
)

// Discord rejects embeds with more than 25 fields.
const maxFields = 25

// List reminder listing command.
type List struct {
	svc *reminderservice.Service
	log *common.Logger
}

func Init(svc *reminderservice.Service, log *common.Logger) *List {
	return &List{svc: svc, log: log}
}

func (*List) Name() string {
	return "list"
}

func (*List) Aliases() []string {
	return []string{"ls"}
}

func (*List) Description() string {
	return "List all of your reminders (sent via DM)."
}

func (*List) Permission() common.PermissionLevel {
	return common.PermissionDefault
}

func (*List) Active() bool {
	return true
}

func (c *List) Execute(ctx context.Context, s common.MessageState) {
	reminders, err := c.svc.List(ctx, s.UserID())
	if err != nil {
		c.log.Error("failed to list reminders:", err)
		s.Reply(fmt.Sprintf("Unexpected error: %s", err.Error()))
		return
	}

	if len(reminders) == 0 {
		s.Reply("You currently don't have any reminders registered.")
		return
	}

	if _, err := s.DMEmbed(listEmbed(reminders)); err != nil {
		s.Reply("I couldn't send you a direct message. Do you allow DMs from server members?")
	}
}

func (c *List) Help(s common.MessageState) {
	cmd := s.Prefix + c.Name()
	fields := []*disgord.EmbedField{}

	// Command aliases.
	fields = append(fields, &disgord.EmbedField{
		Name:  "Aliases",
		Value: strings.Join(c.Aliases(), ", "),
	})

	embed := &disgord.Embed{
		Title:       fmt.Sprintf("Command \"%s\" usage", c.Name()),
		Description: cmd,
		Color:       common.ColorDefault,
		Fields:      fields,
	}
	s.SendEmbed(embed)
}

// listEmbed renders reminders, already ordered by fire time, as embed fields.
func listEmbed(reminders []models.Reminder) *disgord.Embed {
	var fields []*disgord.EmbedField
	for i, r := range reminders {
		if i == maxFields-1 && len(reminders) > maxFields {
			fields = append(fields, &disgord.EmbedField{
				Name:  "…",
				Value: fmt.Sprintf("and %d more", len(reminders)-i),
			})
			break
		}
		fields = append(fields, &disgord.EmbedField{
			Name:  fmt.Sprintf("%s (ID: %d)", reminderservice.FormatFireTime(r.FireTimestamp), r.ID),
			Value: r.Message,
		})
	}

	return &disgord.Embed{
		Title:  "List of your registered reminders:",
		Color:  reminderservice.ReminderColor,
		Fields: fields,
	}
}
