package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/coach"
)

// Router dispatches slash commands typed into a chat. Everything else is a
// coaching turn and is left to the dialog.
type Router struct {
	byName map[string]core.Command
	sorted []core.Command
}

func New(commands []core.Command) *Router {
	r := &Router{byName: make(map[string]core.Command, len(commands)+1)}

	all := append([]core.Command{&helpCommand{router: r}}, commands...)
	for _, cmd := range all {
		r.byName[cmd.Name()] = cmd
	}
	for _, cmd := range r.byName {
		r.sorted = append(r.sorted, cmd)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Name() < r.sorted[j].Name() })
	return r
}

func (r *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	name, args, ok := parse(input)
	if !ok {
		return "", false
	}

	cmd, found := r.byName[name]
	if !found {
		return fmt.Sprintf("Unknown command: /%s. Send /help for the list.", name), true
	}

	out, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return coach.UserMessage(err), true
	}
	return out, true
}

func (r *Router) ListCommands() []core.Command {
	return r.sorted
}

// parse splits "/name@bot arg1 arg2". Telegram appends the bot name in groups.
func parse(input string) (string, []string, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return "", nil, false
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	if name == "" {
		return "", nil, false
	}
	return strings.ToLower(name), parts[1:], true
}

type helpCommand struct {
	router *Router
}

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "List the available commands" }

func (c *helpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	f := NewResponseFormatter()
	lines := make([]string, 0, len(c.router.sorted))
	for _, cmd := range c.router.sorted {
		lines = append(lines, fmt.Sprintf("/%s: %s", cmd.Name(), cmd.Description()))
	}
	return f.Combine(
		f.Section("📋", "Commands", f.List(lines)),
		f.Tip("anything else you type is part of the conversation"),
	), nil
}
