package ports

import "context"

// --- Terminal Port ---

// Terminal abstracts the console's line-oriented I/O so handlers and
// the wizard can be driven from tests.
type Terminal interface {
	// ReadLine blocks for the next input line (without the trailing
	// newline). It returns ctx.Err() if the context is cancelled
	// first, and io.EOF when input is exhausted.
	ReadLine(ctx context.Context) (string, error)

	Print(text string)
	Printf(format string, args ...any)
}

// --- Clipboard Port ---

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// --- Command Handler Port (Inbound) ---

// CommandHandler defines the "plugin" interface for console commands.
type CommandHandler interface {
	// Command returns the command word (e.g., "register")
	Command() string
	// Summary returns the one-line help text.
	Summary() string
	// Handle processes the command with its remaining arguments.
	Handle(ctx context.Context, args []string) error
}
