package handlers

import (
	"SignalConsole/internal/console"
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"SignalConsole/internal/wizard"
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterCommand(NewRegisterHandler)
}

// errAborted signals that the operator backed out of the wizard.
var errAborted = errors.New("registration aborted")

// registerHandler drives the registration wizard interactively.
type registerHandler struct {
	log    zerolog.Logger
	cfg    *config.Config
	client ports.RegistrationClient
	bus    ports.EventBus
	term   ports.Terminal
}

// NewRegisterHandler creates a new handler for the register command.
func NewRegisterHandler(cfg *config.Config, deps *console.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &registerHandler{
		log:    baseLogger.With().Str("component", "register_handler").Logger(),
		cfg:    cfg,
		client: deps.Registration,
		bus:    deps.Bus,
		term:   deps.Terminal,
	}
}

func (h *registerHandler) Command() string { return "register" }

func (h *registerHandler) Summary() string { return "register a new bot phone number" }

// Handle walks the wizard until it completes or the operator aborts.
func (h *registerHandler) Handle(ctx context.Context, args []string) error {
	form := domain.NewRegistrationForm(h.cfg.DefaultModel, h.cfg.DefaultSystemPrompt)
	w := wizard.New(h.client, h.bus, form, &h.log)

	for {
		var err error
		switch w.Step() {
		case domain.StepPhone:
			err = h.stepPhone(ctx, w)
		case domain.StepVerify:
			err = h.stepVerify(ctx, w)
		case domain.StepConfigure:
			err = h.stepConfigure(ctx, w)
		case domain.StepComplete:
			h.printSummary(w)
			return nil
		}

		if errors.Is(err, errAborted) {
			h.term.Print("Registration aborted.\n")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// stepPhone collects the phone-step fields and submits them.
func (h *registerHandler) stepPhone(ctx context.Context, w *wizard.Wizard) error {
	h.term.Print("\n-- Step 1/3: phone number --\n")
	if h.cfg.CaptchaURL != "" {
		h.term.Printf("Captcha tokens can be generated at %s\n", h.cfg.CaptchaURL)
	}

	phone, err := h.prompt(ctx, "Phone number (E.164, 'q' to abort): ")
	if err != nil {
		return err
	}
	if phone == "q" {
		return errAborted
	}
	w.SetField(wizard.FieldPhoneNumber, phone)

	captcha, err := h.prompt(ctx, "Captcha token (enter to skip): ")
	if err != nil {
		return err
	}
	w.SetField(wizard.FieldCaptcha, captcha)

	voice, err := h.prompt(ctx, "Verification by voice call instead of SMS? [y/N]: ")
	if err != nil {
		return err
	}
	w.SetUseVoice(strings.EqualFold(voice, "y") || strings.EqualFold(voice, "yes"))

	secret, err := h.prompt(ctx, "Ownership secret for later changes (enter to skip): ")
	if err != nil {
		return err
	}
	w.SetField(wizard.FieldOwnershipSecret, secret)

	if err := w.SubmitPhone(ctx); err != nil {
		if errors.Is(err, wizard.ErrRequestInFlight) {
			return nil
		}
		h.term.Printf("! %s\n", w.Err())
	}
	return nil
}

// stepVerify collects the 6-digit code.
func (h *registerHandler) stepVerify(ctx context.Context, w *wizard.Wizard) error {
	h.term.Print("\n-- Step 2/3: verification --\n")
	h.term.Printf("A verification code was sent to %s.\n", w.PhoneNumber())

	code, err := h.prompt(ctx, "Verification code ('back' to re-enter the number, 'q' to abort): ")
	if err != nil {
		return err
	}
	switch code {
	case "q":
		return errAborted
	case "back":
		return w.Back(ctx)
	}

	w.SetField(wizard.FieldVerificationCode, code)

	pin, err := h.prompt(ctx, "Signal PIN to set (enter to skip): ")
	if err != nil {
		return err
	}
	w.SetField(wizard.FieldPin, pin)

	if err := w.SubmitCode(ctx); err != nil {
		if errors.Is(err, wizard.ErrRequestInFlight) {
			return nil
		}
		h.term.Printf("! %s\n", w.Err())
	}
	return nil
}

// stepConfigure collects the optional profile fields.
func (h *registerHandler) stepConfigure(ctx context.Context, w *wizard.Wizard) error {
	h.term.Print("\n-- Step 3/3: profile (optional) --\n")

	name, err := h.prompt(ctx, "Display name (enter to skip, 'skip' to finish now): ")
	if err != nil {
		return err
	}
	if name == "skip" {
		return w.Skip(ctx)
	}
	w.SetField(wizard.FieldDisplayName, name)

	username, err := h.prompt(ctx, "Username (enter to skip): ")
	if err != nil {
		return err
	}
	w.SetField(wizard.FieldUsername, username)

	if err := w.SaveProfile(ctx); err != nil {
		if errors.Is(err, wizard.ErrRequestInFlight) {
			return nil
		}
		h.term.Printf("! %s\n", w.Err())
	}
	return nil
}

// printSummary reports the finished registration.
func (h *registerHandler) printSummary(w *wizard.Wizard) {
	h.term.Print("\nRegistration complete.\n")
	h.term.Printf("Phone number: %s\n", w.PhoneNumber())
	if link := w.UsernameLink(); link != "" {
		h.term.Printf("Share link:   %s\n", link)
	}
	h.term.Print("The bot will appear in the listing once it comes online.\n")
}

// prompt prints a label and reads one trimmed line.
func (h *registerHandler) prompt(ctx context.Context, label string) (string, error) {
	h.term.Print(label)
	line, err := h.term.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
