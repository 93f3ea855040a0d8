package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/console/view"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewHelpHandler)
}

// helpHandler is the plugin for the help command.
type helpHandler struct {
	log  zerolog.Logger
	cfg  *config.Config
	term ports.Terminal
}

// NewHelpHandler creates a new handler for the help command.
func NewHelpHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &helpHandler{
		log:  baseLogger.With().Str("component", "help_handler").Logger(),
		cfg:  cfg,
		term: deps.Terminal,
	}
}

func (h *helpHandler) Command() string { return "help" }

func (h *helpHandler) Summary() string { return "show this overview" }

// Handle prints the hero section and the command list.
func (h *helpHandler) Handle(ctx context.Context, args []string) error {
	h.term.Print(view.Hero(h.cfg.CaptchaURL, h.cfg.SourceURL, h.cfg.VerifyPortalURL))
	h.term.Print("\nCommands:\n")
	h.term.Print("  register              register a new bot phone number\n")
	h.term.Print("  bots                  browse the public bot listing\n")
	h.term.Print("  attest                inspect the hardware attestation\n")
	h.term.Print("  status [number]       backend health, or one number's status\n")
	h.term.Print("  username set|drop     manage an account's username\n")
	h.term.Print("  unregister <number>   remove a registration\n")
	h.term.Print("  quit                  end the session\n")
	return nil
}
