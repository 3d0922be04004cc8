package main

import (
	"context"
	"fmt"
	"os"

	"github.com/qysp/reminderbot/pkg/commands"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/core"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
	"github.com/qysp/reminderbot/pkg/store"
)

func main() {
	// Load env variables.
	cfg, err := common.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := common.NewLogger(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Open connection to the reminder store and migrate.
	st, err := store.Open(ctx, store.Config{
		Driver:   cfg.DatabaseDriver,
		DSN:      cfg.DatabaseDSN,
		Database: cfg.MongoDatabase,
	}, log)
	if err != nil {
		log.Fatal("failed to open reminder store:", err)
	}
	defer st.Close()

	bot := core.New(cfg, log)

	svc := reminderservice.New(reminderservice.Options{
		Store:     st,
		Deliverer: reminderservice.NewDMDeliverer(bot.DMSender(), cfg.DeliveryRate, cfg.DeliveryBurst),
		Logger:    log,
		Interval:  cfg.ReminderInterval,
	})
	defer svc.Close()

	// Reminders must be scheduled before any command can touch them.
	if _, err := svc.Bootstrap(ctx); err != nil {
		log.Fatal("failed to schedule stored reminders:", err)
	}

	// Start the Discord bot.
	if err := bot.Start(commands.Init(svc, log)); err != nil {
		log.Fatal("failed to connect to Discord:", err)
	}
	log.Info("bot is running, press Ctrl+C to stop")

	if err := bot.StopOnInterrupt(); err != nil {
		log.Error("failed to disconnect:", err)
	}
}
