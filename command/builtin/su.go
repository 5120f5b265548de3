package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type SuCommand struct {
}

// Name returns the command identifier
func (s *SuCommand) Name() string {
	return "su"
}

// Description returns human-readable help text
func (s *SuCommand) Description() string {
	return "Switch the effective user, stacking the current session"
}

// Usage returns a usage string for help
func (s *SuCommand) Usage() string {
	return "su [username] [password]"
}

// Execute runs the command against the session environment
func (s *SuCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	username := "root"
	if len(args) > 0 {
		username = args[0]
	}

	if _, err := env.FS().LookupUser(username); err != nil {
		return nil, err
	}

	// Root switches freely; everyone else supplies the target's password
	// as an argument. Interactive password prompts do not exist here.
	current := env.User()
	if !current.IsRoot() {
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: password required", data.ErrAuthFailed)
		}
		if err := env.FS().Authenticate(ctx, username, args[1]); err != nil {
			return nil, err
		}
	}

	if err := env.PushSession(username); err != nil {
		return nil, err
	}

	return &command.Result{}, nil
}
