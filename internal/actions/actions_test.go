package actions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/Raikerian/go-discord-bootstrap/internal/actions"
	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
	"github.com/Raikerian/go-discord-bootstrap/internal/users"
	"github.com/Raikerian/go-discord-bootstrap/pkg/test"
)

type memoryStore struct {
	users map[string]users.User
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]users.User)}
}

func (s *memoryStore) Upsert(_ context.Context, username string, birthday *time.Time) (users.User, error) {
	if s.err != nil {
		return users.User{}, s.err
	}
	u := s.users[username]
	if u.ID == 0 {
		u.ID = uint(len(s.users) + 1)
	}
	u.Username = username
	u.Birthday = birthday
	s.users[username] = u

	return u, nil
}

func (s *memoryStore) FindByUsername(_ context.Context, username string) (users.User, error) {
	if s.err != nil {
		return users.User{}, s.err
	}
	u, ok := s.users[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}

	return u, nil
}

func params(t *testing.T, src string) manifest.Params {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))

	return manifest.NewParams(node.Content[0])
}

func expectReply(client *test.MockInteractionClient, content string, ephemeral bool) {
	client.On("RespondInteraction", discord.InteractionID(1001), "interaction-token",
		mock.MatchedBy(func(resp api.InteractionResponse) bool {
			isEphemeral := resp.Data.Flags&discord.EphemeralMessage != 0
			return resp.Type == api.MessageInteractionWithSource &&
				resp.Data.Content.Val == content && isEphemeral == ephemeral
		})).Return(nil).Once()
}

func stringOpt(name, value string) discord.CommandInteractionOption {
	return discord.CommandInteractionOption{Name: name, Type: discord.StringOptionType, Value: json.Raw(`"` + value + `"`)}
}

func TestRespond(t *testing.T) {
	h, err := actions.Respond(params(t, "content: pong\nephemeral: true\n"))
	require.NoError(t, err)

	client := test.NewMockInteractionClient(t)
	expectReply(client, "pong", true)

	ev, data := test.CommandEvent("ping")
	require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))

	_, err = actions.Respond(manifest.Params{})
	assert.Error(t, err, "content is required")
}

func TestVersion(t *testing.T) {
	old := actions.AppVersion
	actions.AppVersion = "1.2.3"
	t.Cleanup(func() { actions.AppVersion = old })

	h, err := actions.Version(manifest.Params{})
	require.NoError(t, err)

	client := test.NewMockInteractionClient(t)
	expectReply(client, "Version: 1.2.3", false)

	ev, data := test.CommandEvent("version")
	require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))
}

func TestBirthdaySet(t *testing.T) {
	store := newMemoryStore()
	h, err := actions.BirthdaySet(store)(manifest.Params{})
	require.NoError(t, err)

	client := test.NewMockInteractionClient(t)
	expectReply(client, "Saved your birthday: March 14, 1990.", true)

	ev, data := test.CommandEvent("birthday", stringOpt("date", "1990-03-14"))
	require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))

	stored, ok := store.users["tester"]
	require.True(t, ok)
	require.NotNil(t, stored.Birthday)
	assert.Equal(t, time.March, stored.Birthday.Month())
}

func TestBirthdaySet_InvalidDate(t *testing.T) {
	store := newMemoryStore()
	h, err := actions.BirthdaySet(store)(params(t, "option: when\n"))
	require.NoError(t, err)

	client := test.NewMockInteractionClient(t)
	expectReply(client, `"14/03/1990" is not a date, please use the YYYY-MM-DD format.`, true)

	ev, data := test.CommandEvent("birthday", stringOpt("when", "14/03/1990"))
	require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))
	assert.Empty(t, store.users)
}

func TestBirthdaySet_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("database is locked")
	h, err := actions.BirthdaySet(store)(manifest.Params{})
	require.NoError(t, err)

	client := test.NewMockInteractionClient(t)
	ev, data := test.CommandEvent("birthday", stringOpt("date", "1990-03-14"))

	err = h(context.Background(), commands.NewInteraction(client, ev, data))
	assert.EqualError(t, err, "database is locked")
	client.AssertNotCalled(t, "RespondInteraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestBirthdayShow(t *testing.T) {
	store := newMemoryStore()
	day := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)
	_, _ = store.Upsert(context.Background(), "friend", &day)

	h, err := actions.BirthdayShow(store)(manifest.Params{})
	require.NoError(t, err)

	t.Run("SelectedUser", func(t *testing.T) {
		client := test.NewMockInteractionClient(t)
		expectReply(client, "friend's birthday is March 14.", false)

		ev, data := test.CommandEvent("whenis", discord.CommandInteractionOption{
			Name: "user", Type: discord.UserOptionType, Value: json.Raw(`"42"`),
		})
		data.Resolved.Users = map[discord.UserID]discord.User{42: {ID: 42, Username: "friend"}}

		require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))
	})

	t.Run("SelfWithoutRecord", func(t *testing.T) {
		client := test.NewMockInteractionClient(t)
		expectReply(client, "No birthday stored for tester.", false)

		ev, data := test.CommandEvent("whenis")
		require.NoError(t, h(context.Background(), commands.NewInteraction(client, ev, data)))
	})
}

func TestReadyEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h, err := actions.Ready(zap.New(core))(manifest.Params{})
	require.NoError(t, err)

	ready := &gateway.ReadyEvent{User: discord.User{ID: 1, Username: "bot", Discriminator: "0001"}}
	require.NoError(t, h(context.Background(), ready))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Ready! Logged in as bot#0001", logs.All()[0].Message)

	assert.Error(t, h(context.Background()))
	assert.Error(t, h(context.Background(), "not an event"))
}

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h, err := actions.Log(zap.New(core))(params(t, "message: joined a guild\nlevel: warn\n"))
	require.NoError(t, err)

	require.NoError(t, h(context.Background(), &gateway.GuildCreateEvent{}))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "joined a guild", entry.Message)
	assert.Equal(t, "GUILD_CREATE", entry.ContextMap()["event"])

	_, err = actions.Log(zap.NewNop())(params(t, "level: loud\n"))
	assert.Error(t, err)
}

func TestCatalogs(t *testing.T) {
	cmdCatalog, err := commands.NewCatalog(actions.CommandActions(newMemoryStore())...)
	require.NoError(t, err)
	assert.Equal(t, []string{"birthday-set", "birthday-show", "respond", "version"}, cmdCatalog.Names())

	evCatalog, err := events.NewCatalog(actions.EventActions(zap.NewNop())...)
	require.NoError(t, err)
	assert.Equal(t, []string{"log", "ready"}, evCatalog.Names())
}
