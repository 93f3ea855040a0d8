package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"
	"errors"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewStatusHandler)
}

// statusHandler reports proxy health, or the registration record of a
// single number when one is given.
type statusHandler struct {
	log    zerolog.Logger
	client ports.RegistrationClient
	term   ports.Terminal
}

// NewStatusHandler creates a new handler for the status command.
func NewStatusHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &statusHandler{
		log:    baseLogger.With().Str("component", "status_handler").Logger(),
		client: deps.Registration,
		term:   deps.Terminal,
	}
}

func (h *statusHandler) Command() string { return "status" }

func (h *statusHandler) Summary() string { return "show proxy health, or 'status <number>' for one account" }

func (h *statusHandler) Handle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return h.health(ctx)
	}

	number, err := domain.NormalizePhoneNumber(args[0])
	if err != nil {
		h.term.Printf("! %s\n", err.Error())
		return nil
	}

	st, err := h.client.Status(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.term.Printf("%s is not registered.\n", number)
			return nil
		}
		return err
	}

	h.term.Printf("Number:     %s\n", st.PhoneNumber)
	h.term.Printf("Status:     %s\n", st.Status)
	if st.RegisteredAt != "" {
		h.term.Printf("Registered: %s\n", st.RegisteredAt)
	}
	return nil
}

func (h *statusHandler) health(ctx context.Context) error {
	ok, err := h.client.Health(ctx)
	if err != nil {
		h.term.Printf("Proxy is unreachable: %s\n", err.Error())
		return nil
	}
	if ok {
		h.term.Print("Proxy is healthy.\n")
	} else {
		h.term.Print("Proxy is up but reports an unhealthy Signal backend.\n")
	}
	return nil
}
