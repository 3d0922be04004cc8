package ping

import (
	"context"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
)

// Ping Ping-Pong command.
type Ping struct{}

func Init() *Ping {
	return &Ping{}
}

func (*Ping) Name() string {
	return "ping"
}

func (*Ping) Aliases() []string {
	return []string{}
}

func (*Ping) Description() string {
	return "Test command. Send a ping, receive a pong."
}

func (*Ping) Permission() common.PermissionLevel {
	return common.PermissionDefault
}

func (*Ping) Active() bool {
	return true
}

func (*Ping) Execute(_ context.Context, s common.MessageState) {
	s.Send("pong")
}

func (p *Ping) Help(s common.MessageState) {
	embed := &disgord.Embed{
		Title:       "Command \"" + p.Name() + "\" usage",
		Description: s.Prefix + p.Name(),
		Color:       common.ColorDefault,
	}
	s.SendEmbed(embed)
}
