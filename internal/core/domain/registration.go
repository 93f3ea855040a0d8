package domain

import (
	"fmt"
	"strings"
)

// Step is a custom type for the wizard's state machine ENUM
type Step string

const (
	// StepPhone collects the phone number, captcha token and
	// delivery preferences. Initial step.
	StepPhone Step = "phone"
	// StepVerify collects the 6-digit SMS/voice code.
	StepVerify Step = "verify"
	// StepConfigure collects the optional display name and username.
	StepConfigure Step = "configure"
	// StepComplete is terminal. No transitions lead out of it.
	StepComplete Step = "complete"
)

// VerificationCodeLength is the exact number of digits the proxy expects.
const VerificationCodeLength = 6

// RegistrationForm holds the wizard-local field state. It is created
// at wizard start with defaults, mutated field-by-field on input, and
// discarded at completion.
type RegistrationForm struct {
	PhoneNumber      string
	Captcha          string
	UseVoice         bool
	OwnershipSecret  string
	VerificationCode string
	Pin              string
	Model            string
	SystemPrompt     string
	Username         string
	DisplayName      string
}

// NewRegistrationForm creates a form pre-filled with the configured
// default model and system prompt.
func NewRegistrationForm(defaultModel, defaultSystemPrompt string) RegistrationForm {
	return RegistrationForm{
		Model:        defaultModel,
		SystemPrompt: defaultSystemPrompt,
	}
}

// SanitizeVerificationCode strips non-digit characters and caps the
// result at VerificationCodeLength characters.
func SanitizeVerificationCode(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == VerificationCodeLength {
			break
		}
	}
	return b.String()
}

// IsCompleteVerificationCode reports whether code is exactly six digits.
func IsCompleteVerificationCode(code string) bool {
	if len(code) != VerificationCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizePhoneNumber reduces a free-form phone number to E.164
// format, mirroring what the proxy does server-side so obviously bad
// input never leaves the client.
func NormalizePhoneNumber(number string) (string, error) {
	hasPlus := strings.HasPrefix(number, "+")

	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	switch n := digits.Len(); {
	case n == 0:
		return "", fmt.Errorf("phone number must contain at least one digit")
	case n < 7:
		return "", fmt.Errorf("phone number too short")
	case n > 15:
		return "", fmt.Errorf("phone number too long")
	}

	if !hasPlus && digits.Len() < 10 {
		return "", fmt.Errorf("phone number must include country code")
	}

	return "+" + digits.String(), nil
}

// DeriveAbout truncates a model identifier to its last path segment
// for use as the bot's about/bio text.
func DeriveAbout(model string) string {
	if idx := strings.LastIndex(model, "/"); idx >= 0 {
		return model[idx+1:]
	}
	return model
}
