package commands

import (
	"errors"
	"sync"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

// ErrAlreadyReplied is returned by Reply and Defer once an initial response
// has been sent.
var ErrAlreadyReplied = errors.New("interaction has already been replied to")

// InteractionClient is the part of the REST API an Interaction needs.
// *session.Session and *api.Client implement it.
type InteractionClient interface {
	RespondInteraction(id discord.InteractionID, token string, resp api.InteractionResponse) error
	FollowUpInteraction(appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error)
}

// Interaction is the context handed to a command: the inbound event plus
// the reply state of this invocation.
type Interaction struct {
	Event *discord.InteractionEvent
	Data  *discord.CommandInteraction

	client InteractionClient

	mu       sync.Mutex
	replied  bool
	deferred bool
}

// NewInteraction wraps a slash command invocation.
func NewInteraction(client InteractionClient, ev *discord.InteractionEvent, data *discord.CommandInteraction) *Interaction {
	return &Interaction{Event: ev, Data: data, client: client}
}

// CommandName is the name of the invoked command.
func (in *Interaction) CommandName() string {
	return in.Data.Name
}

// User returns the invoking user, whether the command ran in a guild or a DM.
func (in *Interaction) User() *discord.User {
	if in.Event.Member != nil {
		return &in.Event.Member.User
	}

	return in.Event.User
}

// Option returns the named top-level option.
func (in *Interaction) Option(name string) (discord.CommandInteractionOption, bool) {
	for _, opt := range in.Data.Options {
		if opt.Name == name {
			return opt, true
		}
	}

	return discord.CommandInteractionOption{}, false
}

// StringOption returns the named option's string value, or "" when absent.
func (in *Interaction) StringOption(name string) string {
	opt, ok := in.Option(name)
	if !ok {
		return ""
	}

	return opt.String()
}

// UserOption returns the user selected for the named option.
func (in *Interaction) UserOption(name string) (*discord.User, bool) {
	opt, ok := in.Option(name)
	if !ok {
		return nil, false
	}
	sf, err := opt.SnowflakeValue()
	if err != nil {
		return nil, false
	}
	u, ok := in.Data.Resolved.Users[discord.UserID(sf)]
	if !ok {
		return nil, false
	}

	return &u, true
}

// Replied reports whether an initial response was sent.
func (in *Interaction) Replied() bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.replied
}

// Deferred reports whether the response was deferred.
func (in *Interaction) Deferred() bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.deferred
}

// Reply sends the initial response.
func (in *Interaction) Reply(data api.InteractionResponseData) error {
	return in.respond(api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &data,
	}, false)
}

// ReplyText sends a plain text initial response.
func (in *Interaction) ReplyText(content string, ephemeral bool) error {
	return in.Reply(textData(content, ephemeral))
}

// Defer acknowledges the interaction; the answer must follow with FollowUp.
func (in *Interaction) Defer(ephemeral bool) error {
	resp := api.InteractionResponse{Type: api.DeferredMessageInteractionWithSource}
	if ephemeral {
		resp.Data = &api.InteractionResponseData{Flags: discord.EphemeralMessage}
	}

	return in.respond(resp, true)
}

func (in *Interaction) respond(resp api.InteractionResponse, deferred bool) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.replied {
		return ErrAlreadyReplied
	}
	if err := in.client.RespondInteraction(in.Event.ID, in.Event.Token, resp); err != nil {
		return err
	}
	in.replied = true
	in.deferred = deferred

	return nil
}

// FollowUp sends an additional message after the initial response.
func (in *Interaction) FollowUp(data api.InteractionResponseData) error {
	_, err := in.client.FollowUpInteraction(in.Event.AppID, in.Event.Token, data)

	return err
}

// FollowUpText sends a plain text follow-up message.
func (in *Interaction) FollowUpText(content string, ephemeral bool) error {
	return in.FollowUp(textData(content, ephemeral))
}

func textData(content string, ephemeral bool) api.InteractionResponseData {
	data := api.InteractionResponseData{
		Content: option.NewNullableString(content),
	}
	if ephemeral {
		data.Flags = discord.EphemeralMessage
	}

	return data
}
