package core

import "context"

// CmdRouter sits in front of the coach dialog on chat transports. handled is
// false when the input is not a command and should be coached instead.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (reply string, handled bool)
	ListCommands() []Command
}

// Command is a slash command such as /state. Name is lowercase, without the slash.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
