package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewQuitHandler)
}

type quitHandler struct {
	term ports.Terminal
}

// NewQuitHandler creates a new handler for the quit command.
func NewQuitHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &quitHandler{term: deps.Terminal}
}

func (h *quitHandler) Command() string { return "quit" }

func (h *quitHandler) Summary() string { return "leave the console" }

func (h *quitHandler) Handle(ctx context.Context, args []string) error {
	h.term.Print("Bye.\n")
	return console.ErrQuit
}
