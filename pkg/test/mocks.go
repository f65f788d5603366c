// Package test provides testify mocks shared by package tests.
package test

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/mock"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
)

// MockCommand is a mock commands.Command.
type MockCommand struct {
	mock.Mock
}

// NewMockCommand creates a MockCommand whose expectations are asserted at
// test cleanup.
func NewMockCommand(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCommand {
	m := &MockCommand{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommand) Name() string {
	return m.Called().String(0)
}

func (m *MockCommand) Description() string {
	return m.Called().String(0)
}

func (m *MockCommand) Options() discord.CommandOptions {
	args := m.Called()
	if opts := args.Get(0); opts != nil {
		return opts.(discord.CommandOptions)
	}

	return nil
}

func (m *MockCommand) Execute(ctx context.Context, in *commands.Interaction) error {
	return m.Called(ctx, in).Error(0)
}

// MockInteractionClient is a mock commands.InteractionClient.
type MockInteractionClient struct {
	mock.Mock
}

// NewMockInteractionClient creates a MockInteractionClient whose
// expectations are asserted at test cleanup.
func NewMockInteractionClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInteractionClient {
	m := &MockInteractionClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInteractionClient) RespondInteraction(id discord.InteractionID, token string, resp api.InteractionResponse) error {
	return m.Called(id, token, resp).Error(0)
}

func (m *MockInteractionClient) FollowUpInteraction(appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error) {
	args := m.Called(appID, token, data)
	msg, _ := args.Get(0).(*discord.Message)

	return msg, args.Error(1)
}

// MockCommandsAPI is a mock commands.CommandsAPI.
type MockCommandsAPI struct {
	mock.Mock
}

// NewMockCommandsAPI creates a MockCommandsAPI whose expectations are
// asserted at test cleanup.
func NewMockCommandsAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCommandsAPI {
	m := &MockCommandsAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommandsAPI) BulkOverwriteCommands(appID discord.AppID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	args := m.Called(appID, cmds)
	out, _ := args.Get(0).([]discord.Command)

	return out, args.Error(1)
}

func (m *MockCommandsAPI) BulkOverwriteGuildCommands(appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error) {
	args := m.Called(appID, guildID, cmds)
	out, _ := args.Get(0).([]discord.Command)

	return out, args.Error(1)
}

// CommandEvent builds an interaction event carrying a slash command
// invocation by a guild member.
func CommandEvent(name string, opts ...discord.CommandInteractionOption) (*discord.InteractionEvent, *discord.CommandInteraction) {
	data := &discord.CommandInteraction{Name: name, Options: opts}
	ev := &discord.InteractionEvent{
		ID:    discord.InteractionID(1001),
		AppID: discord.AppID(2002),
		Token: "interaction-token",
		Data:  data,
		Member: &discord.Member{
			User: discord.User{ID: 3003, Username: "tester"},
		},
	}

	return ev, data
}
