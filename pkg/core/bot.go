package core

import (
	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/commands"
	"github.com/qysp/reminderbot/pkg/common"
)

// Bot owns the Disgord client and dispatches messages to the command index.
type Bot struct {
	// Client Disgord client.
	Client *disgord.Client

	config *common.Config
	log    *common.Logger
	index  *commands.CommandIndex
}

// New creates a Disgord client. It does not connect to the gateway yet, but
// its REST calls are usable right away.
func New(cfg *common.Config, log *common.Logger) *Bot {
	client := disgord.New(&disgord.Config{
		BotToken: cfg.DiscordToken,
		Logger:   log.DisgordLogger(),
	})

	return &Bot{
		Client: client,
		config: cfg,
		log:    log,
	}
}

// Start connects the client and starts listening for commands.
func (b *Bot) Start(index *commands.CommandIndex) error {
	if err := b.Client.Connect(); err != nil {
		return err
	}

	b.index = index
	b.ListenMessages()
	return nil
}

// StopOnInterrupt blocks until the process is interrupted, then disconnects the client.
func (b *Bot) StopOnInterrupt() error {
	return b.Client.DisconnectOnInterrupt()
}

// DMSender adapts the client for reminder delivery.
func (b *Bot) DMSender() DMSender {
	return DMSender{client: b.Client}
}

// DMSender opens DM channels and sends embeds through the Discord REST API.
type DMSender struct {
	client *disgord.Client
}

// CreateDM returns the id of the DM channel with the user.
func (d DMSender) CreateDM(userID disgord.Snowflake) (disgord.Snowflake, error) {
	ch, err := d.client.CreateDM(userID)
	if err != nil {
		return 0, err
	}
	return ch.ID, nil
}

// SendEmbed posts an embed to the channel.
func (d DMSender) SendEmbed(channelID disgord.Snowflake, embed *disgord.Embed) error {
	_, err := d.client.SendMsg(channelID, &disgord.CreateMessageParams{
		Embed: embed,
	})
	return err
}
