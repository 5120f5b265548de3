package command

import (
	"fmt"
	"sort"
	"sync"
)

// CommandCenter handles command registration and lookup.
type CommandCenter struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

func NewCommandCenter() *CommandCenter {
	return &CommandCenter{
		cmds: make(map[string]Command),
	}
}

// Register registers a command under its name.
func (cc *CommandCenter) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, exists := cc.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	cc.cmds[name] = cmd
	return nil
}

// Unregister removes a registered command.
func (cc *CommandCenter) Unregister(name string) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, exists := cc.cmds[name]; !exists {
		return fmt.Errorf("command not found: %s", name)
	}

	delete(cc.cmds, name)
	return nil
}

// Get returns a command by name.
func (cc *CommandCenter) Get(name string) (Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	cmd, exists := cc.cmds[name]
	return cmd, exists
}

// List returns all registered commands sorted by name.
func (cc *CommandCenter) List() []Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	commands := make([]Command, 0, len(cc.cmds))
	for _, cmd := range cc.cmds {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})

	return commands
}

// Names returns all registered command names sorted.
func (cc *CommandCenter) Names() []string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	names := make([]string, 0, len(cc.cmds))
	for name := range cc.cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
