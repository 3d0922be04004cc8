package common

import (
	"testing"

	"github.com/andersfylling/disgord"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		prefix  string
		name    string
		args    []string
	}{
		{content: "!remind 10s Buy milk", prefix: "!", name: "remind", args: []string{"10s", "Buy", "milk"}},
		{content: "!Remind   10s  Buy", prefix: "!", name: "remind", args: []string{"10s", "Buy"}},
		{content: "remind 10s", prefix: "!", name: "remind", args: []string{"10s"}},
		{content: "!ping", prefix: "!", name: "ping", args: []string{}},
		{content: "?ls", prefix: "?", name: "ls", args: []string{}},
		{content: "   ", prefix: "!", name: "", args: nil},
	}

	for _, tt := range tests {
		name, args := ParseCommand(tt.content, tt.prefix)
		assert.Equal(t, tt.name, name, tt.content)
		assert.Equal(t, tt.args, args, tt.content)
	}
}

func TestUserPermission(t *testing.T) {
	state := func(author, developer uint64) MessageState {
		return MessageState{
			Event: &disgord.MessageCreate{Message: &disgord.Message{
				Author: &disgord.User{ID: disgord.NewSnowflake(author)},
			}},
			DeveloperID: disgord.NewSnowflake(developer),
		}
	}

	assert.Equal(t, PermissionDeveloper, state(42, 42).UserPermission())
	assert.Equal(t, PermissionDefault, state(7, 42).UserPermission())
	assert.Equal(t, PermissionDefault, state(0, 0).UserPermission())

	assert.True(t, PermissionDeveloper.Allows(PermissionDefault))
	assert.False(t, PermissionDefault.Allows(PermissionDeveloper))
}
