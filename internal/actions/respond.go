// Package actions holds the built-in handlers that command and event
// modules refer to by name.
package actions

import (
	"context"
	"errors"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
)

// AppVersion is the version of the application, should be set during build time.
var AppVersion = "dev"

type respondParams struct {
	Content   string `yaml:"content"`
	Ephemeral bool   `yaml:"ephemeral"`
}

// Respond replies with fixed content.
func Respond(p manifest.Params) (commands.Handler, error) {
	var params respondParams
	if err := p.Decode(&params); err != nil {
		return nil, err
	}
	if params.Content == "" {
		return nil, errors.New("content is required")
	}

	return func(_ context.Context, in *commands.Interaction) error {
		return in.ReplyText(params.Content, params.Ephemeral)
	}, nil
}

// Version replies with the running build's version.
func Version(p manifest.Params) (commands.Handler, error) {
	var params struct {
		Ephemeral bool `yaml:"ephemeral"`
	}
	if err := p.Decode(&params); err != nil {
		return nil, err
	}

	return func(_ context.Context, in *commands.Interaction) error {
		return in.ReplyText("Version: "+AppVersion, params.Ephemeral)
	}, nil
}
