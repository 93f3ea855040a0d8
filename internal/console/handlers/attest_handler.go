package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/console/view"
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewAttestHandler)
}

// attestHandler drives the hardware attestation panel: a default
// cached query on entry, manual retry, challenge queries, and copy
// affordances for the raw fields.
type attestHandler struct {
	log    zerolog.Logger
	source ports.AttestationSource
	clip   ports.Clipboard
	term   ports.Terminal
	cfg    *config.Config
}

// NewAttestHandler creates a new handler for the attest command.
func NewAttestHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &attestHandler{
		log:    baseLogger.With().Str("component", "attest_handler").Logger(),
		source: deps.Attestation,
		clip:   deps.Clipboard,
		term:   deps.Terminal,
		cfg:    cfg,
	}
}

func (h *attestHandler) Command() string { return "attest" }

func (h *attestHandler) Summary() string { return "inspect the backend's hardware attestation" }

func (h *attestHandler) Handle(ctx context.Context, args []string) error {
	panel := view.NewVerificationPanel(h.cfg.SourceURL, h.cfg.VerifyPortalURL, h.clip)
	defer panel.Close()

	// att is the snapshot the panel currently shows. A challenge query
	// swaps it out; 'retry' restores the default view.
	att, err := h.source.Default(ctx)
	h.show(panel, att, err)
	h.term.Print("Panel actions: 'details', 'challenge <nonce>', 'copy quote', 'copy hash', 'retry', 'q'.\n")

	for {
		h.term.Print("attest> ")
		line, rerr := h.term.ReadLine(ctx)
		if rerr != nil {
			return rerr
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "back":
			return nil
		case "retry":
			att, err = h.source.Refresh(ctx)
			h.show(panel, att, err)
		case "details":
			if att == nil {
				h.term.Print("Nothing to expand while attestation is unavailable.\n")
				continue
			}
			panel.ToggleDetails()
			h.term.Print(panel.Render(att))
		case "challenge":
			if len(fields) < 2 {
				h.term.Print("Provide a nonce, e.g. 'challenge a1b2c3'.\n")
				continue
			}
			att, err = h.source.WithChallenge(ctx, fields[1])
			h.show(panel, att, err)
		case "copy":
			if len(fields) < 2 {
				h.term.Print("Copy what? 'copy quote' or 'copy hash'.\n")
				continue
			}
			h.copyField(panel, att, fields[1])
		default:
			h.term.Printf("Unknown panel action %q.\n", fields[0])
		}
	}
}

// show renders either the snapshot or the unavailable view.
func (h *attestHandler) show(panel *view.VerificationPanel, att *domain.Attestation, err error) {
	if err != nil {
		h.log.Warn().Err(err).Msg("attestation query failed")
		h.term.Print(panel.RenderUnavailable(err))
		return
	}
	h.term.Print(panel.Render(att))
}

func (h *attestHandler) copyField(panel *view.VerificationPanel, att *domain.Attestation, field string) {
	var err error
	switch field {
	case "quote":
		err = panel.CopyQuote(att)
	case "hash":
		err = panel.CopyComposeHash(att)
	default:
		h.term.Printf("Cannot copy %q.\n", field)
		return
	}
	if err != nil {
		h.term.Printf("! %s\n", err.Error())
		return
	}
	h.term.Print("Copied to clipboard.\n")
}
