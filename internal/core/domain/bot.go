package domain

// RegistrationStatus is a custom type for the proxy's status ENUM
type RegistrationStatus string

const (
	// StatusPending means registration was initiated, awaiting the verification code
	StatusPending RegistrationStatus = "pending"
	// StatusVerified means the verification code was accepted
	StatusVerified RegistrationStatus = "verified"
	// StatusFailed means the registration failed or was abandoned
	StatusFailed RegistrationStatus = "failed"
)

// Bot represents one publicly listed bot account.
// It is sourced wholesale from the listing endpoint and never
// mutated on this side.
type Bot struct {
	Username     string
	PhoneNumber  string
	SignalLink   string
	IdentityKey  string
	Description  string
	Model        string
	SystemPrompt string
	RegisteredAt string
}

// AccountStatus is the registration status of a single phone number.
type AccountStatus struct {
	PhoneNumber  string
	Status       RegistrationStatus
	RegisteredAt string
}
