// Package builtin ships the standard terminal commands. Each command lives
// in its own file; InitBuiltin registers the whole set on a command center.
package builtin

import (
	"github.com/mwantia/webtop/command"
)

// InitBuiltin registers every builtin command.
func InitBuiltin(cc *command.CommandCenter) error {
	commands := []command.Command{
		&HelpCommand{},
		&ClearCommand{},
		&EchoCommand{},
		&PwdCommand{},
		&LsCommand{},
		&CdCommand{},
		&CatCommand{},
		&TouchCommand{},
		&MkdirCommand{},
		&RmCommand{},
		&MvCommand{},
		&CpCommand{},
		&TrashCommand{},
		&WhoamiCommand{},
		&SuCommand{},
		&ExitCommand{},
		&UseraddCommand{},
		&UserdelCommand{},
		&PasswdCommand{},
		&ChmodCommand{},
		&ChownCommand{},
		&HistoryCommand{},
	}

	for _, cmd := range commands {
		if err := cc.Register(cmd); err != nil {
			return err
		}
	}

	return nil
}

// splitFlags separates single-dash flag tokens from positional arguments.
// Grouped flags like -la yield the letters l and a.
func splitFlags(args []string) (flags map[byte]bool, rest []string) {
	flags = make(map[byte]bool)
	for _, arg := range args {
		if len(arg) > 1 && arg[0] == '-' && arg != "--" {
			for i := 1; i < len(arg); i++ {
				flags[arg[i]] = true
			}
			continue
		}
		rest = append(rest, arg)
	}
	return flags, rest
}
