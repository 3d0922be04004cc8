package list

import (
	"testing"

	"github.com/qysp/reminderbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmbed(t *testing.T) {
	embed := listEmbed([]models.Reminder{
		{ID: 1, Message: "Buy milk", FireTimestamp: 1700000000},
		{ID: 2, Message: "Call mom", FireTimestamp: 1700003600},
	})

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "on the 14th November 2023 at 22:13:20 UTC (ID: 1)", embed.Fields[0].Name)
	assert.Equal(t, "Buy milk", embed.Fields[0].Value)
	assert.Equal(t, "on the 14th November 2023 at 23:13:20 UTC (ID: 2)", embed.Fields[1].Name)
}

func TestListEmbed_Truncates(t *testing.T) {
	var reminders []models.Reminder
	for i := 0; i < 30; i++ {
		reminders = append(reminders, models.Reminder{ID: uint64(i + 1), Message: "x", FireTimestamp: 1700000000})
	}

	embed := listEmbed(reminders)
	require.Len(t, embed.Fields, maxFields)
	assert.Equal(t, "and 6 more", embed.Fields[maxFields-1].Value)
}
