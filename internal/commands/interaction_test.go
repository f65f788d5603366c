package commands_test

import (
	"errors"
	"testing"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/pkg/test"
)

func TestInteraction_ReplyOnce(t *testing.T) {
	client := test.NewMockInteractionClient(t)
	client.On("RespondInteraction", discord.InteractionID(1001), "interaction-token",
		mock.MatchedBy(func(resp api.InteractionResponse) bool {
			return resp.Data.Flags&discord.EphemeralMessage != 0 && resp.Data.Content.Val == "hi"
		})).Return(nil).Once()

	ev, data := test.CommandEvent("ping")
	in := commands.NewInteraction(client, ev, data)

	assert.False(t, in.Replied())
	require.NoError(t, in.ReplyText("hi", true))
	assert.True(t, in.Replied())
	assert.False(t, in.Deferred())

	assert.ErrorIs(t, in.ReplyText("again", false), commands.ErrAlreadyReplied)
	assert.ErrorIs(t, in.Defer(false), commands.ErrAlreadyReplied)
}

func TestInteraction_FailedReplyIsNotMarked(t *testing.T) {
	client := test.NewMockInteractionClient(t)
	client.On("RespondInteraction", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("unknown interaction")).Once()

	ev, data := test.CommandEvent("ping")
	in := commands.NewInteraction(client, ev, data)

	require.Error(t, in.ReplyText("hi", false))
	assert.False(t, in.Replied())
}

func TestInteraction_DeferThenFollowUp(t *testing.T) {
	client := test.NewMockInteractionClient(t)
	client.On("RespondInteraction", discord.InteractionID(1001), "interaction-token",
		mock.MatchedBy(func(resp api.InteractionResponse) bool {
			return resp.Type == api.DeferredMessageInteractionWithSource
		})).Return(nil).Once()
	client.On("FollowUpInteraction", discord.AppID(2002), "interaction-token",
		mock.MatchedBy(func(data api.InteractionResponseData) bool {
			return data.Content.Val == "done"
		})).Return(&discord.Message{}, nil).Once()

	ev, data := test.CommandEvent("slow")
	in := commands.NewInteraction(client, ev, data)

	require.NoError(t, in.Defer(false))
	assert.True(t, in.Replied())
	assert.True(t, in.Deferred())
	require.NoError(t, in.FollowUpText("done", false))
}

func TestInteraction_Accessors(t *testing.T) {
	ev, data := test.CommandEvent("birthday",
		discord.CommandInteractionOption{Name: "date", Type: discord.StringOptionType, Value: json.Raw(`"2000-01-02"`)},
		discord.CommandInteractionOption{Name: "user", Type: discord.UserOptionType, Value: json.Raw(`"42"`)},
	)
	data.Resolved.Users = map[discord.UserID]discord.User{42: {ID: 42, Username: "friend"}}

	in := commands.NewInteraction(nil, ev, data)

	assert.Equal(t, "birthday", in.CommandName())
	assert.Equal(t, "tester", in.User().Username)
	assert.Equal(t, "2000-01-02", in.StringOption("date"))
	assert.Empty(t, in.StringOption("missing"))

	u, ok := in.UserOption("user")
	require.True(t, ok)
	assert.Equal(t, "friend", u.Username)

	_, ok = in.UserOption("date")
	assert.False(t, ok)

	ev.Member = nil
	ev.User = &discord.User{ID: 5, Username: "dm-user"}
	assert.Equal(t, "dm-user", in.User().Username)
}
