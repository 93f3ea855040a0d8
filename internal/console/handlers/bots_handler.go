package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/console/view"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewBotsHandler)
}

// botsHandler renders the public bot listing as cards with
// expand/collapse and copy-to-clipboard affordances.
type botsHandler struct {
	log    zerolog.Logger
	client ports.RegistrationClient
	clip   ports.Clipboard
	term   ports.Terminal
}

// NewBotsHandler creates a new handler for the bots command.
func NewBotsHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &botsHandler{
		log:    baseLogger.With().Str("component", "bots_handler").Logger(),
		client: deps.Registration,
		clip:   deps.Clipboard,
		term:   deps.Terminal,
	}
}

func (h *botsHandler) Command() string { return "bots" }

func (h *botsHandler) Summary() string { return "browse the public bot listing" }

// Handle fetches the listing once and runs the card sub-loop.
func (h *botsHandler) Handle(ctx context.Context, args []string) error {
	bots, err := h.client.ListBots(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch bot listing: %w", err)
	}
	if len(bots) == 0 {
		h.term.Print("No bots are registered yet.\n")
		return nil
	}

	cards := make([]*view.BotCard, len(bots))
	for i, bot := range bots {
		cards[i] = view.NewBotCard(bot, h.clip)
	}
	// Cancel pending copy-indicator resets when the view goes away
	defer func() {
		for _, card := range cards {
			card.Close()
		}
	}()

	h.renderAll(cards)
	h.term.Print("Card actions: 'open N', 'copy N', 'list', 'q' to leave.\n")

	for {
		h.term.Print("bots> ")
		line, err := h.term.ReadLine(ctx)
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "back":
			return nil
		case "list":
			h.renderAll(cards)
		case "open":
			card, ok := h.pick(cards, fields)
			if !ok {
				continue
			}
			card.Toggle()
			h.term.Print(card.Render())
		case "copy":
			card, ok := h.pick(cards, fields)
			if !ok {
				continue
			}
			if err := card.CopyIdentityKey(); err != nil {
				h.term.Printf("! %s\n", err.Error())
				continue
			}
			h.term.Print("Identity key copied to clipboard.\n")
		default:
			h.term.Printf("Unknown card action %q.\n", fields[0])
		}
	}
}

// renderAll prints every card with its index.
func (h *botsHandler) renderAll(cards []*view.BotCard) {
	h.term.Printf("%d bot(s) registered:\n\n", len(cards))
	for i, card := range cards {
		h.term.Printf("[%d] %s\n", i+1, card.Render())
	}
}

// pick resolves a 1-based card index argument.
func (h *botsHandler) pick(cards []*view.BotCard, fields []string) (*view.BotCard, bool) {
	if len(fields) < 2 {
		h.term.Print("Which card? e.g. 'open 1'.\n")
		return nil, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(cards) {
		h.term.Printf("No card %q.\n", fields[1])
		return nil, false
	}
	return cards[n-1], true
}
