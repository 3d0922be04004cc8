package commands

import (
	"context"

	"github.com/qysp/reminderbot/pkg/common"
)

// Command basic command interface.
type Command interface {
	// Name command name.
	Name() string

	// Aliases command name aliases.
	Aliases() []string

	// Description command (help) description.
	Description() string

	// Permission command permission level.
	Permission() common.PermissionLevel

	// Active whether the command is active.
	Active() bool

	// Execute execute a command's response.
	Execute(context.Context, common.MessageState)

	// Help command help/usage message.
	Help(common.MessageState)
}
