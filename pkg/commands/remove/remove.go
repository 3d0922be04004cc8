package remove

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
)

// labelID matches the id suffix of an autocomplete label, "<message> (ID: <id>)".
var labelID = regexp.MustCompile(`\(ID: (\d+)\)\s*$`)

// maxCandidates caps the list shown for an ambiguous query.
const maxCandidates = 10

// Remove reminder removing command.
type Remove struct {
	svc *reminderservice.Service
	log *common.Logger
}

func Init(svc *reminderservice.Service, log *common.Logger) *Remove {
	return &Remove{svc: svc, log: log}
}

func (*Remove) Name() string {
	return "remove"
}

func (*Remove) Aliases() []string {
	return []string{"rm", "delete", "del"}
}

func (*Remove) Description() string {
	return "Remove a reminder of yours."
}

func (*Remove) Permission() common.PermissionLevel {
	return common.PermissionDefault
}

func (*Remove) Active() bool {
	return true
}

func (c *Remove) Execute(ctx context.Context, s common.MessageState) {
	query := strings.Join(s.UserCommandArgs(), " ")
	if query == "" {
		c.Help(s)
		return
	}

	candidates, err := resolve(ctx, c.svc, s.UserID(), query)
	if err != nil {
		c.log.Error("failed to look up reminders:", err)
		s.Reply(fmt.Sprintf("Unexpected error: %s", err.Error()))
		return
	}

	switch len(candidates) {
	case 0:
		s.Reply("The reminder you're trying to remove does not exist.")
		return
	case 1:
	default:
		s.SendEmbed(ambiguousEmbed(query, candidates))
		return
	}

	id := candidates[0].ID
	if err := c.svc.Delete(ctx, id); err != nil {
		c.log.Error("failed to remove reminder:", err)
		s.Reply(fmt.Sprintf("Unexpected error: %s", err.Error()))
		return
	}

	s.SendEmbed(&disgord.Embed{
		Title:       "Reminder removed!",
		Description: fmt.Sprintf("Successfully removed reminder with ID: %d", id),
		Color:       common.ColorConfirm,
	})
}

func (c *Remove) Help(s common.MessageState) {
	cmd := s.Prefix + c.Name()
	fields := []*disgord.EmbedField{}

	// Command aliases.
	fields = append(fields, &disgord.EmbedField{
		Name:  "Aliases",
		Value: strings.Join(c.Aliases(), ", "),
	})

	// Usage example.
	fields = append(fields, &disgord.EmbedField{
		Name:  "[Example] Removing by ID",
		Value: fmt.Sprintf("%s 5577006791947779410", cmd),
	})

	// Usage example.
	fields = append(fields, &disgord.EmbedField{
		Name:  "[Example] Removing by the start of the message",
		Value: fmt.Sprintf("%s buy milk", cmd),
	})

	embed := &disgord.Embed{
		Title:       fmt.Sprintf("Command \"%s\" usage", c.Name()),
		Description: fmt.Sprintf("%s [reminder ID or message]", cmd),
		Color:       common.ColorDefault,
		Fields:      fields,
	}
	s.SendEmbed(embed)
}

// parseID reads an id from an autocomplete label or a bare number.
func parseID(query string) (uint64, bool) {
	query = strings.TrimSpace(query)
	if m := labelID.FindStringSubmatch(query); m != nil {
		query = m[1]
	}
	id, err := strconv.ParseUint(query, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// resolve finds the user's reminders a remove query refers to.
// An id only matches the user's own reminders. Anything else is treated as a
// message prefix.
func resolve(ctx context.Context, svc *reminderservice.Service, userID disgord.Snowflake, query string) ([]models.Reminder, error) {
	if id, ok := parseID(query); ok {
		reminders, err := svc.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		var out []models.Reminder
		for _, r := range reminders {
			if r.ID == id {
				out = append(out, r)
			}
		}
		// A reminder may also start with a number.
		if len(out) > 0 {
			return out[:1], nil
		}
	}

	return svc.Match(ctx, userID, query)
}

func ambiguousEmbed(query string, candidates []models.Reminder) *disgord.Embed {
	lines := make([]string, 0, maxCandidates)
	for i, r := range candidates {
		if i == maxCandidates {
			lines = append(lines, fmt.Sprintf("…and %d more", len(candidates)-maxCandidates))
			break
		}
		lines = append(lines, r.Label())
	}

	return &disgord.Embed{
		Title:       fmt.Sprintf("%d reminders start with \"%s\"", len(candidates), query),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorError,
		Footer: &disgord.EmbedFooter{
			Text: "Remove one by its ID.",
		},
	}
}
