package console

import (
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"

	"github.com/rs/zerolog"
)

// --- Define types for handler "constructors" ---
// This allows us to pass dependencies from main.go

// Deps bundles everything a command handler may need.
type Deps struct {
	Registration ports.RegistrationClient
	Attestation  ports.AttestationSource
	Terminal     ports.Terminal
	Clipboard    ports.Clipboard
	Bus          ports.EventBus
}

type CommandHandlerConstructor func(
	cfg *config.Config,
	deps *Deps,
	baseLogger *zerolog.Logger,
) ports.CommandHandler

// --- Create the global registry ---
var commandRegistry []CommandHandlerConstructor

// RegisterCommand is called by handlers in their init() function
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterAllHandlers is the single function called by main.go.
// It builds all registered handlers and passes them to the router.
func RegisterAllHandlers(
	cfg *config.Config,
	router *Router,
	deps *Deps,
	baseLogger *zerolog.Logger,
) {
	log := baseLogger.With().Str("component", "console_registry").Logger()

	for _, constructor := range commandRegistry {
		handler := constructor(cfg, deps, baseLogger)
		router.RegisterCommandHandler(handler)
	}
	log.Info().Int("count", len(commandRegistry)).Msg("Registered console command handlers")
}
