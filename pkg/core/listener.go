package core

import (
	"context"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"go.uber.org/zap"
)

// commandTimeout bounds the store work of a single command.
const commandTimeout = 15 * time.Second

// ListenMessages listen for Discord messages.
func (b *Bot) ListenMessages() {
	b.Client.On(disgord.EvtMessageCreate, func(session disgord.Session, evt *disgord.MessageCreate) {
		s := common.MessageState{
			Session:     session,
			Event:       evt,
			Prefix:      b.config.CommandPrefix,
			DeveloperID: b.config.DeveloperID,
		}

		if s.IsBot() {
			return
		}

		// Prefix is always needed, except in a direct message.
		if !s.HasPrefix() && !s.IsDMChannel() {
			return
		}

		command := b.index.Get(s.UserCommand())
		if command == nil {
			return
		}

		if !s.UserPermission().Allows(command.Permission()) {
			s.Reply("You don't have permissions to use this command!")
			return
		}

		b.log.With(
			zap.String("command", command.Name()),
			zap.Uint64("user_id", uint64(s.UserID())),
		).Debug("executing command")

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		command.Execute(ctx, s)
	})
}
