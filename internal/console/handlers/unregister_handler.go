package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewUnregisterHandler)
}

// unregisterHandler removes a number's registration after an explicit
// confirmation.
type unregisterHandler struct {
	log    zerolog.Logger
	client ports.RegistrationClient
	term   ports.Terminal
}

// NewUnregisterHandler creates a new handler for the unregister command.
func NewUnregisterHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &unregisterHandler{
		log:    baseLogger.With().Str("component", "unregister_handler").Logger(),
		client: deps.Registration,
		term:   deps.Terminal,
	}
}

func (h *unregisterHandler) Command() string { return "unregister" }

func (h *unregisterHandler) Summary() string { return "'unregister <number>' removes a registration" }

func (h *unregisterHandler) Handle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.term.Printf("Usage: %s\n", h.Summary())
		return nil
	}

	number, err := domain.NormalizePhoneNumber(args[0])
	if err != nil {
		h.term.Printf("! %s\n", err.Error())
		return nil
	}

	confirm, err := h.prompt(ctx, "This removes "+number+" permanently. Type 'yes' to continue: ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		h.term.Print("Cancelled.\n")
		return nil
	}

	secret, err := h.prompt(ctx, "Ownership secret: ")
	if err != nil {
		return err
	}

	if err := h.client.Unregister(ctx, number, secret); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.term.Printf("%s is not registered.\n", number)
			return nil
		case errors.Is(err, domain.ErrOwnershipMismatch):
			h.term.Print("Ownership secret rejected.\n")
			return nil
		default:
			return err
		}
	}

	h.log.Info().Str("number", number).Msg("registration removed")
	h.term.Printf("%s unregistered.\n", number)
	return nil
}

func (h *unregisterHandler) prompt(ctx context.Context, label string) (string, error) {
	h.term.Print(label)
	line, err := h.term.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
