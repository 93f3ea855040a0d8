package ports

import (
	"SignalConsole/internal/core/domain"
	"context"
)

// --- Request Parameter Structures ---

// RegisterParams holds all optional knobs for initiating registration.
type RegisterParams struct {
	Captcha         string // Captcha token, if the proxy demands one
	UseVoice        bool   // Voice call instead of SMS
	OwnershipSecret string // Hashed server-side, authorizes later operations
	Model           string
	SystemPrompt    string
}

// VerifyParams holds the options for the code-submission call.
type VerifyParams struct {
	Pin             string // Optional Signal PIN to set
	OwnershipSecret string
}

// ProfileParams holds the fields for a profile update.
type ProfileParams struct {
	Name            string
	About           string
	OwnershipSecret string
}

// --- Registration Client Port (Outbound) ---

// RegistrationClient defines the interface for talking to the
// registration proxy. Pure request/response, no retained state.
type RegistrationClient interface {
	// Register initiates registration for a phone number.
	Register(ctx context.Context, number string, params RegisterParams) error

	// Verify submits the 6-digit verification code.
	Verify(ctx context.Context, number, code string, params VerifyParams) error

	// UpdateProfile sets the display name and about text.
	UpdateProfile(ctx context.Context, number string, params ProfileParams) error

	// SetUsername claims a username and returns the resulting
	// signal.me link (may be empty if the proxy omits it).
	SetUsername(ctx context.Context, number, username, ownershipSecret string) (string, error)

	// DeleteUsername releases the account's username.
	DeleteUsername(ctx context.Context, number, ownershipSecret string) error

	// Status returns the registration record for a number.
	Status(ctx context.Context, number string) (*domain.AccountStatus, error)

	// Unregister removes the number's registration entirely.
	Unregister(ctx context.Context, number, ownershipSecret string) error

	// ListBots returns the ordered public bot listing.
	ListBots(ctx context.Context) ([]domain.Bot, error)

	// Health reports whether the proxy and its Signal backend are up.
	Health(ctx context.Context) (bool, error)
}
