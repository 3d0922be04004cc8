package commands

import (
	"github.com/qysp/reminderbot/pkg/commands/list"
	"github.com/qysp/reminderbot/pkg/commands/ping"
	"github.com/qysp/reminderbot/pkg/commands/remind"
	"github.com/qysp/reminderbot/pkg/commands/remove"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
)

// CommandIndex represents the index for bot commands mapped with their name and aliases.
type CommandIndex struct {
	commands map[string]Command
	// list holds every unique command in registration order.
	list []Command
}

// Init initialize the command index.
// Commands are registered by name as well as alias.
func Init(svc *reminderservice.Service, log *common.Logger) *CommandIndex {
	index := NewCommandIndex()

	index.Register(
		ping.Init(),
		remind.Init(svc, log),
		list.Init(svc, log),
		remove.Init(svc, log),
		newHelp(index),
	)

	return index
}

// NewCommandIndex returns an empty index.
func NewCommandIndex() *CommandIndex {
	return &CommandIndex{commands: make(map[string]Command)}
}

// Register adds commands to the command index.
// Inactive commands are skipped. A name always wins over another command's alias.
func (ci *CommandIndex) Register(commands ...Command) {
	for _, cmd := range commands {
		if !cmd.Active() {
			continue
		}

		ci.list = append(ci.list, cmd)

		ci.Set(cmd.Name(), cmd)
		for _, alias := range cmd.Aliases() {
			if !ci.Has(alias) {
				ci.Set(alias, cmd)
			}
		}
	}
}

// Set registers a bot command.
func (ci *CommandIndex) Set(cmdName string, cmd Command) {
	ci.commands[cmdName] = cmd
}

// Has returns a bool indicating whether the command index already has a registered command with that name.
func (ci *CommandIndex) Has(cmdName string) bool {
	_, ok := ci.commands[cmdName]
	return ok
}

// Get returns the registered command by name or alias.
func (ci *CommandIndex) Get(cmdName string) Command {
	return ci.commands[cmdName]
}

// List returns every registered command without duplicates for aliases.
func (ci *CommandIndex) List() []Command {
	return append([]Command(nil), ci.list...)
}
