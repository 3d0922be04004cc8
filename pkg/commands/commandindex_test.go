package commands

import (
	"context"
	"testing"

	"github.com/qysp/reminderbot/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name       string
	aliases    []string
	permission common.PermissionLevel
	inactive   bool
}

func (c *stubCommand) Name() string { return c.name }
func (c *stubCommand) Aliases() []string { return c.aliases }
func (c *stubCommand) Description() string { return c.name + " things" }
func (c *stubCommand) Permission() common.PermissionLevel { return c.permission }
func (c *stubCommand) Active() bool { return !c.inactive }
func (c *stubCommand) Execute(context.Context, common.MessageState) {}
func (c *stubCommand) Help(common.MessageState) {}

func TestCommandIndex_Register(t *testing.T) {
	remind := &stubCommand{name: "remind", aliases: []string{"r", "rm"}}
	remove := &stubCommand{name: "remove", aliases: []string{"rm"}}
	retired := &stubCommand{name: "retired", inactive: true}

	index := NewCommandIndex()
	index.Register(remind, remove, retired)

	assert.Same(t, remind, index.Get("remind"))
	assert.Same(t, remind, index.Get("r"))
	// The first command to claim an alias keeps it.
	assert.Same(t, remind, index.Get("rm"))
	assert.Same(t, remove, index.Get("remove"))
	assert.Nil(t, index.Get("retired"))
	assert.False(t, index.Has("retired"))

	assert.Equal(t, []Command{remind, remove}, index.List())
}

func TestHelp_Overview(t *testing.T) {
	index := NewCommandIndex()
	index.Register(
		&stubCommand{name: "remind", aliases: []string{"r"}},
		&stubCommand{name: "debug", permission: common.PermissionDeveloper},
	)
	help := newHelp(index)
	index.Register(help)

	embed := help.overview("!", common.PermissionDefault)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "!remind (r)", embed.Fields[0].Name)
	assert.Equal(t, "remind things", embed.Fields[0].Value)
	assert.Equal(t, "!help (h, commands)", embed.Fields[1].Name)

	embed = help.overview("!", common.PermissionDeveloper)
	assert.Len(t, embed.Fields, 3)
}
