package console

import (
	"SignalConsole/internal/core/ports"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by a handler to end the console session.
var ErrQuit = errors.New("quit requested")

// Router is the console facade. It holds all command "plugins" and
// routes parsed input lines to the correct handler.
type Router struct {
	log      zerolog.Logger
	term     ports.Terminal
	handlers map[string]ports.CommandHandler
}

// NewRouter creates a new console router.
func NewRouter(term ports.Terminal, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:      baseLogger.With().Str("component", "console_router").Logger(),
		term:     term,
		handlers: make(map[string]ports.CommandHandler),
	}
}

// RegisterCommandHandler adds a "plugin" to the router.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.handlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered new command handler")
}

// Summaries returns "command - summary" lines, sorted by command.
func (r *Router) Summaries() []string {
	out := make([]string, 0, len(r.handlers))
	for cmd, h := range r.handlers {
		out = append(out, cmd+" - "+h.Summary())
	}
	sort.Strings(out)
	return out
}

// Dispatch parses one input line and runs its handler. It returns
// ErrQuit when the session should end; all other handler failures are
// reported to the terminal and swallowed.
func (r *Router) Dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command := strings.ToLower(fields[0])
	args := fields[1:]

	handler, ok := r.handlers[command]
	if !ok {
		r.log.Warn().Str("command", command).Msg("No handler for command")
		r.term.Printf("Unknown command %q. Type 'help' for the command list.\n", command)
		return nil
	}

	r.log.Info().Str("handler", command).Msg("Routing to command handler")
	if err := handler.Handle(ctx, args); err != nil {
		if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
			return err
		}
		r.log.Error().Err(err).Str("command", command).Msg("Command handler failed")
		r.term.Printf("Error: %s\n", err.Error())
	}
	return nil
}
