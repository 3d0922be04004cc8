package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
)

// Help lists the registered commands, or shows the usage of one of them.
type Help struct {
	index *CommandIndex
}

func newHelp(index *CommandIndex) *Help {
	return &Help{index: index}
}

func (*Help) Name() string {
	return "help"
}

func (*Help) Aliases() []string {
	return []string{"h", "commands"}
}

func (*Help) Description() string {
	return "List all commands, or show how to use one."
}

func (*Help) Permission() common.PermissionLevel {
	return common.PermissionDefault
}

func (*Help) Active() bool {
	return true
}

func (c *Help) Execute(_ context.Context, s common.MessageState) {
	if args := s.UserCommandArgs(); len(args) > 0 {
		if cmd := c.index.Get(strings.ToLower(args[0])); cmd != nil {
			cmd.Help(s)
			return
		}
		s.Reply(fmt.Sprintf("There is no command called \"%s\".", args[0]))
		return
	}

	s.SendEmbed(c.overview(s.Prefix, s.UserPermission()))
}

// overview builds the command list visible to a user with the given permission.
func (c *Help) overview(prefix string, perm common.PermissionLevel) *disgord.Embed {
	var fields []*disgord.EmbedField
	for _, cmd := range c.index.List() {
		if !perm.Allows(cmd.Permission()) {
			continue
		}
		name := prefix + cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fields = append(fields, &disgord.EmbedField{
			Name:  name,
			Value: cmd.Description(),
		})
	}

	return &disgord.Embed{
		Title:       "Commands",
		Description: fmt.Sprintf("Use %shelp [command] for details.", prefix),
		Color:       common.ColorDefault,
		Fields:      fields,
	}
}

func (c *Help) Help(s common.MessageState) {
	s.SendEmbed(&disgord.Embed{
		Title:       fmt.Sprintf("Command \"%s\" usage", c.Name()),
		Description: fmt.Sprintf("%s%s [command?]", s.Prefix, c.Name()),
		Color:       common.ColorDefault,
	})
}
