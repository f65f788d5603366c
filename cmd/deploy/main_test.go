package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/pkg/test"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestDeploy_DryRunPrintsSortedManifest(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"config.yaml": "log_level: error\ncommands:\n  dir: " + filepath.Join(dir, "commands") + "\n",
		"commands/util/ping.yaml": `
name: ping
description: Replies with Pong!
execute:
  action: respond
  content: Pong!
`,
		"commands/profile/birthday.yaml": `
name: birthday
description: Store your birthday
options:
  - name: date
    description: YYYY-MM-DD
    required: true
execute:
  action: birthday-set
`,
		"commands/profile/broken.yaml": "description: no name\n",
	})

	var out bytes.Buffer
	cmd := newDeployCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
		"--dry-run",
	})
	require.NoError(t, cmd.Execute())

	var manifest []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &manifest))
	require.Len(t, manifest, 2)
	assert.Equal(t, "birthday", manifest[0]["name"])
	assert.Equal(t, "ping", manifest[1]["name"])
	assert.Len(t, manifest[0]["options"], 1)
}

func TestDeploy_ClearDryRunIsEmpty(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	cmd := newDeployCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "none.yaml"),
		"--env-file", filepath.Join(dir, "none.env"),
		"--clear", "--dry-run",
	})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "null\n", out.String())
}

func TestPushWith_Guilds(t *testing.T) {
	client := test.NewMockCommandsAPI(t)
	manifest := []api.CreateCommandData{{Name: "ping", Description: "Replies with Pong!"}}

	client.On("BulkOverwriteGuildCommands", discord.AppID(7), discord.GuildID(111), manifest).
		Return([]discord.Command{{Name: "ping"}}, nil).Once()
	client.On("BulkOverwriteGuildCommands", discord.AppID(7), discord.GuildID(222), manifest).
		Return(nil, errors.New("missing access")).Once()

	cfg := config.Default()
	cfg.Discord.GuildIDs = []string{"111", "bogus", "222"}
	logger := zaptest.NewLogger(t)

	err := pushWith(commands.NewDeployer(client, 7, logger), cfg, manifest, false, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 guilds")
	assert.Contains(t, err.Error(), "missing access")
}

func TestPushWith_Global(t *testing.T) {
	client := test.NewMockCommandsAPI(t)
	client.On("BulkOverwriteCommands", discord.AppID(7), []api.CreateCommandData{}).
		Return([]discord.Command{}, nil).Once()

	logger := zaptest.NewLogger(t)
	require.NoError(t, pushWith(commands.NewDeployer(client, 7, logger), config.Default(), nil, true, logger))
	client.AssertNotCalled(t, "BulkOverwriteGuildCommands", mock.Anything, mock.Anything, mock.Anything)
}

func TestPushWith_NoGuilds(t *testing.T) {
	client := test.NewMockCommandsAPI(t)
	logger := zaptest.NewLogger(t)

	err := pushWith(commands.NewDeployer(client, 7, logger), config.Default(), nil, false, logger)
	assert.ErrorContains(t, err, "GUILD_ID")
}
