package remove

import (
	"context"
	"testing"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
	"github.com/qysp/reminderbot/pkg/services/reminderservice"
	"github.com/qysp/reminderbot/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = disgord.NewSnowflake(42)
	bob   = disgord.NewSnowflake(7)
)

func setupTestService(t *testing.T) *reminderservice.Service {
	t.Helper()

	st, err := store.Open(context.Background(), store.Config{Driver: "sqlite3", DSN: ":memory:"}, common.NopLogger())
	require.NoError(t, err, "Failed to open test store")

	svc := reminderservice.New(reminderservice.Options{Store: st, Interval: time.Hour})
	t.Cleanup(func() {
		svc.Close()
		_ = st.Close()
	})
	return svc
}

func TestParseID(t *testing.T) {
	tests := []struct {
		query string
		id    uint64
		ok    bool
	}{
		{query: "Buy milk (ID: 12345)", id: 12345, ok: true},
		{query: "Meet at 5 (ID: 77) ", id: 77, ok: true},
		{query: "12345", id: 12345, ok: true},
		{query: " 9 ", id: 9, ok: true},
		{query: "Buy milk", ok: false},
		{query: "Buy 2 milk", ok: false},
		{query: "-3", ok: false},
	}

	for _, tt := range tests {
		id, ok := parseID(tt.query)
		assert.Equal(t, tt.ok, ok, tt.query)
		assert.Equal(t, tt.id, id, tt.query)
	}
}

func TestResolve(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	create := func(user disgord.Snowflake, msg string) models.Reminder {
		r, _, err := svc.Create(ctx, user, msg, "1h")
		require.NoError(t, err)
		return r
	}
	milk := create(alice, "Buy milk")
	bread := create(alice, "Buy bread")
	theirs := create(bob, "Buy milk")

	got, err := resolve(ctx, svc, alice, milk.Label())
	require.NoError(t, err)
	assert.Equal(t, []models.Reminder{milk}, got)

	got, err = resolve(ctx, svc, alice, "buy m")
	require.NoError(t, err)
	assert.Equal(t, []models.Reminder{milk}, got)

	got, err = resolve(ctx, svc, alice, "buy")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Reminder{milk, bread}, got)

	// Another user's id does not resolve.
	got, err = resolve(ctx, svc, alice, theirs.Label())
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.Delete(ctx, milk.ID))
	got, err = resolve(ctx, svc, alice, milk.Label())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAmbiguousEmbed(t *testing.T) {
	var candidates []models.Reminder
	for i := 0; i < maxCandidates+3; i++ {
		candidates = append(candidates, models.Reminder{ID: uint64(i + 1), Message: "Buy"})
	}

	embed := ambiguousEmbed("buy", candidates)
	assert.Equal(t, "13 reminders start with \"buy\"", embed.Title)
	assert.Contains(t, embed.Description, "Buy (ID: 1)")
	assert.Contains(t, embed.Description, "…and 3 more")
	assert.NotContains(t, embed.Description, "Buy (ID: 11)")
}
