package wizard

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// fallbackMessage is shown when a failure carries no message of its own.
const fallbackMessage = "Something went wrong. Please try again."

// ErrRequestInFlight is returned when a submit is attempted while the
// previous one is still running. The wizard never has two forward
// requests in flight at once.
var ErrRequestInFlight = errors.New("a request is already in flight")

// Field identifies one input of the registration form.
type Field string

const (
	FieldPhoneNumber      Field = "phone_number"
	FieldCaptcha          Field = "captcha"
	FieldOwnershipSecret  Field = "ownership_secret"
	FieldVerificationCode Field = "verification_code"
	FieldPin              Field = "pin"
	FieldModel            Field = "model"
	FieldSystemPrompt     Field = "system_prompt"
	FieldUsername         Field = "username"
	FieldDisplayName      Field = "display_name"
)

// Wizard drives the linear registration flow:
//
//	phone -> verify -> configure -> complete
//
// Exactly one step is current at a time. Each forward transition is
// one explicit, user-triggered network call; errors stay scoped to
// the step they happened on and clear on the next field edit.
type Wizard struct {
	log    zerolog.Logger
	client ports.RegistrationClient
	bus    ports.EventBus

	mu      sync.Mutex
	step    domain.Step
	form    domain.RegistrationForm
	stepErr string
	busy    bool

	// normalized E.164 number, fixed at the phone->verify transition
	phoneNumber  string
	usernameLink string

	onComplete func(phoneNumber string)
}

// New creates a wizard at the phone step with a pre-filled form.
func New(client ports.RegistrationClient, bus ports.EventBus, form domain.RegistrationForm, baseLogger *zerolog.Logger) *Wizard {
	return &Wizard{
		log:    baseLogger.With().Str("component", "wizard").Logger(),
		client: client,
		bus:    bus,
		step:   domain.StepPhone,
		form:   form,
	}
}

// OnComplete registers a callback fired once when the wizard reaches
// the complete step.
func (w *Wizard) OnComplete(fn func(phoneNumber string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onComplete = fn
}

// Step returns the current step.
func (w *Wizard) Step() domain.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Form returns a snapshot of the current form state.
func (w *Wizard) Form() domain.RegistrationForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Err returns the current step's error message, if any.
func (w *Wizard) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepErr
}

// Busy reports whether a forward-transition request is in flight.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// PhoneNumber returns the normalized number submitted at the phone
// step, empty before that.
func (w *Wizard) PhoneNumber() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phoneNumber
}

// UsernameLink returns the signal.me link produced by a successful
// username claim, if any.
func (w *Wizard) UsernameLink() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.usernameLink
}

// SetField mutates one form field. Editing any field clears the
// current step's error. The verification code field is collapsed to
// at most six digits.
func (w *Wizard) SetField(field Field, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch field {
	case FieldPhoneNumber:
		w.form.PhoneNumber = value
	case FieldCaptcha:
		w.form.Captcha = value
	case FieldOwnershipSecret:
		w.form.OwnershipSecret = value
	case FieldVerificationCode:
		w.form.VerificationCode = domain.SanitizeVerificationCode(value)
	case FieldPin:
		w.form.Pin = value
	case FieldModel:
		w.form.Model = value
	case FieldSystemPrompt:
		w.form.SystemPrompt = value
	case FieldUsername:
		w.form.Username = value
	case FieldDisplayName:
		w.form.DisplayName = value
	default:
		w.log.Warn().Str("field", string(field)).Msg("Ignoring unknown form field")
		return
	}

	w.stepErr = ""
}

// SetUseVoice toggles voice-call delivery for the verification code.
func (w *Wizard) SetUseVoice(useVoice bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.UseVoice = useVoice
	w.stepErr = ""
}

// SubmitPhone performs the phone -> verify transition.
func (w *Wizard) SubmitPhone(ctx context.Context) error {
	w.mu.Lock()
	if w.step != domain.StepPhone {
		w.mu.Unlock()
		return fmt.Errorf("cannot submit phone number at step %q", w.step)
	}
	if w.busy {
		w.mu.Unlock()
		return ErrRequestInFlight
	}

	if w.form.PhoneNumber == "" {
		w.stepErr = "Phone number is required."
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}
	normalized, err := domain.NormalizePhoneNumber(w.form.PhoneNumber)
	if err != nil {
		w.stepErr = humanMessage(err)
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}

	params := ports.RegisterParams{
		Captcha:         w.form.Captcha,
		UseVoice:        w.form.UseVoice,
		OwnershipSecret: w.form.OwnershipSecret,
		Model:           w.form.Model,
		SystemPrompt:    w.form.SystemPrompt,
	}
	w.busy = true
	w.mu.Unlock()

	callErr := w.client.Register(ctx, normalized, params)

	w.mu.Lock()
	w.busy = false
	if callErr != nil {
		w.log.Warn().Err(callErr).Msg("Registration call failed")
		w.stepErr = humanMessage(callErr)
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}

	w.phoneNumber = normalized
	w.stepErr = ""
	w.advanceLocked(ctx, domain.StepVerify)
	w.mu.Unlock()
	return nil
}

// SubmitCode performs the verify -> configure transition.
func (w *Wizard) SubmitCode(ctx context.Context) error {
	w.mu.Lock()
	if w.step != domain.StepVerify {
		w.mu.Unlock()
		return fmt.Errorf("cannot submit verification code at step %q", w.step)
	}
	if w.busy {
		w.mu.Unlock()
		return ErrRequestInFlight
	}

	if !domain.IsCompleteVerificationCode(w.form.VerificationCode) {
		w.stepErr = "Enter the 6-digit verification code."
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}

	number := w.phoneNumber
	code := w.form.VerificationCode
	params := ports.VerifyParams{Pin: w.form.Pin, OwnershipSecret: w.form.OwnershipSecret}
	w.busy = true
	w.mu.Unlock()

	callErr := w.client.Verify(ctx, number, code, params)

	w.mu.Lock()
	w.busy = false
	if callErr != nil {
		w.log.Warn().Err(callErr).Msg("Verification call failed")
		w.stepErr = humanMessage(callErr)
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}

	w.stepErr = ""
	w.advanceLocked(ctx, domain.StepConfigure)
	w.mu.Unlock()
	return nil
}

// SaveProfile performs the configure -> complete transition. It runs
// up to two independent calls: profile update (only when a display
// name was entered) and username claim (only when provided). A
// succeeded half is not rolled back when the other fails.
func (w *Wizard) SaveProfile(ctx context.Context) error {
	w.mu.Lock()
	if w.step != domain.StepConfigure {
		w.mu.Unlock()
		return fmt.Errorf("cannot save profile at step %q", w.step)
	}
	if w.busy {
		w.mu.Unlock()
		return ErrRequestInFlight
	}

	number := w.phoneNumber
	form := w.form

	// Nothing to save: completing requires no calls at all.
	if form.DisplayName == "" && form.Username == "" {
		w.stepErr = ""
		w.advanceLocked(ctx, domain.StepComplete)
		w.mu.Unlock()
		return nil
	}

	w.busy = true
	w.mu.Unlock()

	var callErr error
	var link string
	if form.DisplayName != "" {
		callErr = w.client.UpdateProfile(ctx, number, ports.ProfileParams{
			Name:            form.DisplayName,
			About:           domain.DeriveAbout(form.Model),
			OwnershipSecret: form.OwnershipSecret,
		})
		if callErr != nil {
			callErr = fmt.Errorf("failed to update profile: %w", callErr)
		}
	}
	if callErr == nil && form.Username != "" {
		link, callErr = w.client.SetUsername(ctx, number, form.Username, form.OwnershipSecret)
		if callErr != nil {
			callErr = fmt.Errorf("failed to set username: %w", callErr)
		}
	}

	w.mu.Lock()
	w.busy = false
	if callErr != nil {
		w.log.Warn().Err(callErr).Msg("Profile configuration failed")
		w.stepErr = humanMessage(callErr)
		w.mu.Unlock()
		return errors.New(w.stepErr)
	}

	w.usernameLink = link
	w.stepErr = ""
	w.advanceLocked(ctx, domain.StepComplete)
	w.mu.Unlock()
	return nil
}

// Skip performs the configure -> complete transition without any
// calls.
func (w *Wizard) Skip(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepConfigure {
		return fmt.Errorf("cannot skip at step %q", w.step)
	}
	w.stepErr = ""
	w.advanceLocked(ctx, domain.StepComplete)
	return nil
}

// Back returns from the verify step to the phone step. No other
// backward transition exists.
func (w *Wizard) Back(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepVerify {
		return fmt.Errorf("cannot go back from step %q", w.step)
	}
	w.stepErr = ""
	w.advanceLocked(ctx, domain.StepPhone)
	return nil
}

// advanceLocked changes the current step, publishes the transition,
// and fires the completion callback on reaching the terminal step.
// Caller must hold w.mu.
func (w *Wizard) advanceLocked(ctx context.Context, to domain.Step) {
	from := w.step
	w.step = to
	w.log.Info().Str("from", string(from)).Str("to", string(to)).Msg("Wizard step changed")

	if w.bus != nil {
		w.bus.Publish(ctx, ports.TopicStepChanged, ports.StepChangedEvent{
			From: string(from),
			To:   string(to),
		})
	}

	if to == domain.StepComplete {
		if w.bus != nil {
			w.bus.Publish(ctx, ports.TopicRegistrationDone, w.phoneNumber)
		}
		if w.onComplete != nil {
			fn := w.onComplete
			w.onComplete = nil // fire once
			fn(w.phoneNumber)
		}
	}
}

// humanMessage reduces a failure to something displayable: the
// error's own message if present, otherwise a fixed fallback.
func humanMessage(err error) string {
	if err == nil || err.Error() == "" {
		return fallbackMessage
	}
	return err.Error()
}
