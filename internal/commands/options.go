package commands

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
)

// OptionSpec is the YAML form of a command option.
type OptionSpec struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Description string       `yaml:"description"`
	Required    bool         `yaml:"required"`
	Choices     []ChoiceSpec `yaml:"choices"`
}

// ChoiceSpec is a fixed choice for a string option.
type ChoiceSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// BuildOptions converts option specs into API command options.
func BuildOptions(specs []OptionSpec) (discord.CommandOptions, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	opts := make(discord.CommandOptions, 0, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("option %d has no name", i)
		}
		opt, err := buildOption(s)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", s.Name, err)
		}
		opts = append(opts, opt)
	}

	return opts, nil
}

func buildOption(s OptionSpec) (discord.CommandOption, error) {
	if len(s.Choices) > 0 && s.Type != "string" && s.Type != "" {
		return nil, fmt.Errorf("choices are only supported for string options")
	}

	switch s.Type {
	case "string", "":
		opt := &discord.StringOption{OptionName: s.Name, Description: s.Description, Required: s.Required}
		for _, c := range s.Choices {
			opt.Choices = append(opt.Choices, discord.StringChoice{Name: c.Name, Value: c.Value})
		}

		return opt, nil
	case "integer":
		return &discord.IntegerOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	case "number":
		return &discord.NumberOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	case "boolean":
		return &discord.BooleanOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	case "user":
		return &discord.UserOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	case "channel":
		return &discord.ChannelOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	case "role":
		return &discord.RoleOption{OptionName: s.Name, Description: s.Description, Required: s.Required}, nil
	default:
		return nil, fmt.Errorf("unsupported option type %q", s.Type)
	}
}
