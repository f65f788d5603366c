package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
	"github.com/Raikerian/go-discord-bootstrap/internal/users"
)

const birthdayLayout = "2006-01-02"

// UserStore is the persistence the birthday actions need.
type UserStore interface {
	Upsert(ctx context.Context, username string, birthday *time.Time) (users.User, error)
	FindByUsername(ctx context.Context, username string) (users.User, error)
}

type birthdayParams struct {
	Option string `yaml:"option"`
}

// BirthdaySet stores the invoking user's birthday.
func BirthdaySet(store UserStore) manifest.Factory[commands.Handler] {
	return func(p manifest.Params) (commands.Handler, error) {
		params := birthdayParams{Option: "date"}
		if err := p.Decode(&params); err != nil {
			return nil, err
		}

		return func(ctx context.Context, in *commands.Interaction) error {
			raw := in.StringOption(params.Option)
			day, err := time.Parse(birthdayLayout, raw)
			if err != nil {
				return in.ReplyText(fmt.Sprintf("%q is not a date, please use the YYYY-MM-DD format.", raw), true)
			}

			u := in.User()
			if u == nil {
				return errors.New("interaction has no user")
			}
			if _, err := store.Upsert(ctx, u.Username, &day); err != nil {
				return err
			}

			return in.ReplyText("Saved your birthday: "+day.Format("January 2, 2006")+".", true)
		}, nil
	}
}

// BirthdayShow replies with a stored birthday, the selected user's or the
// invoker's own.
func BirthdayShow(store UserStore) manifest.Factory[commands.Handler] {
	return func(p manifest.Params) (commands.Handler, error) {
		params := birthdayParams{Option: "user"}
		if err := p.Decode(&params); err != nil {
			return nil, err
		}

		return func(ctx context.Context, in *commands.Interaction) error {
			target, ok := in.UserOption(params.Option)
			if !ok {
				target = in.User()
			}
			if target == nil {
				return errors.New("interaction has no user")
			}

			u, err := store.FindByUsername(ctx, target.Username)
			switch {
			case errors.Is(err, users.ErrNotFound), err == nil && u.Birthday == nil:
				return in.ReplyText("No birthday stored for "+target.Username+".", false)
			case err != nil:
				return err
			}

			return in.ReplyText(target.Username+"'s birthday is "+u.Birthday.Format("January 2")+".", false)
		}, nil
	}
}
