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
	console.RegisterCommand(NewUsernameHandler)
}

// usernameHandler claims or releases an account's username outside of
// the registration wizard.
type usernameHandler struct {
	log    zerolog.Logger
	client ports.RegistrationClient
	term   ports.Terminal
}

// NewUsernameHandler creates a new handler for the username command.
func NewUsernameHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &usernameHandler{
		log:    baseLogger.With().Str("component", "username_handler").Logger(),
		client: deps.Registration,
		term:   deps.Terminal,
	}
}

func (h *usernameHandler) Command() string { return "username" }

func (h *usernameHandler) Summary() string {
	return "'username set <number> <name>' or 'username drop <number>'"
}

func (h *usernameHandler) Handle(ctx context.Context, args []string) error {
	if len(args) < 2 {
		h.term.Printf("Usage: %s\n", h.Summary())
		return nil
	}

	number, err := domain.NormalizePhoneNumber(args[1])
	if err != nil {
		h.term.Printf("! %s\n", err.Error())
		return nil
	}

	secret, err := h.promptSecret(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			h.term.Print("Usage: username set <number> <name>\n")
			return nil
		}
		link, err := h.client.SetUsername(ctx, number, args[2], secret)
		if err != nil {
			return h.explain(err)
		}
		h.term.Printf("Username set for %s.\n", number)
		if link != "" {
			h.term.Printf("Share link: %s\n", link)
		}
	case "drop":
		if err := h.client.DeleteUsername(ctx, number, secret); err != nil {
			return h.explain(err)
		}
		h.term.Printf("Username released for %s.\n", number)
	default:
		h.term.Printf("Unknown subcommand %q.\n", args[0])
	}
	return nil
}

// promptSecret reads the ownership secret set at registration time.
func (h *usernameHandler) promptSecret(ctx context.Context) (string, error) {
	h.term.Print("Ownership secret: ")
	line, err := h.term.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// explain turns the well-known proxy errors into operator guidance
// instead of bubbling them up as failures.
func (h *usernameHandler) explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.term.Print("That number is not registered.\n")
		return nil
	case errors.Is(err, domain.ErrOwnershipMismatch):
		h.term.Print("Ownership secret rejected.\n")
		return nil
	default:
		return err
	}
}
