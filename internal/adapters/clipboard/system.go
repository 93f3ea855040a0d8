package clipboard

import (
	"SignalConsole/internal/core/ports"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// systemClipboard implements ports.Clipboard over the OS clipboard.
type systemClipboard struct {
	log zerolog.Logger
}

// NewSystemClipboard creates the system clipboard adapter.
func NewSystemClipboard(baseLogger *zerolog.Logger) ports.Clipboard {
	return &systemClipboard{
		log: baseLogger.With().Str("component", "clipboard").Logger(),
	}
}

// WriteText puts text on the system clipboard.
func (c *systemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		c.log.Warn().Msg("No clipboard utility available on this platform")
		return fmt.Errorf("clipboard is not supported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		c.log.Error().Err(err).Msg("Failed to write to clipboard")
		return fmt.Errorf("could not write to clipboard: %w", err)
	}
	return nil
}
