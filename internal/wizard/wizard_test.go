package wizard

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockRegistrationClient
type MockRegistrationClient struct {
	mock.Mock
}

func (m *MockRegistrationClient) Register(ctx context.Context, number string, params ports.RegisterParams) error {
	args := m.Called(ctx, number, params)
	return args.Error(0)
}
func (m *MockRegistrationClient) Verify(ctx context.Context, number, code string, params ports.VerifyParams) error {
	args := m.Called(ctx, number, code, params)
	return args.Error(0)
}
func (m *MockRegistrationClient) UpdateProfile(ctx context.Context, number string, params ports.ProfileParams) error {
	args := m.Called(ctx, number, params)
	return args.Error(0)
}
func (m *MockRegistrationClient) SetUsername(ctx context.Context, number, username, ownershipSecret string) (string, error) {
	args := m.Called(ctx, number, username, ownershipSecret)
	return args.String(0), args.Error(1)
}
func (m *MockRegistrationClient) DeleteUsername(ctx context.Context, number, ownershipSecret string) error {
	args := m.Called(ctx, number, ownershipSecret)
	return args.Error(0)
}
func (m *MockRegistrationClient) Status(ctx context.Context, number string) (*domain.AccountStatus, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStatus), args.Error(1)
}
func (m *MockRegistrationClient) Unregister(ctx context.Context, number, ownershipSecret string) error {
	args := m.Called(ctx, number, ownershipSecret)
	return args.Error(0)
}
func (m *MockRegistrationClient) ListBots(ctx context.Context) ([]domain.Bot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bot), args.Error(1)
}
func (m *MockRegistrationClient) Health(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// --- Helpers ---

func newTestWizard(client ports.RegistrationClient) *Wizard {
	nopLogger := zerolog.Nop()
	form := domain.NewRegistrationForm("meta/llama-3.1-70b", "You are a helpful assistant.")
	return New(client, nil, form, &nopLogger)
}

// atVerify advances a fresh wizard past the phone step.
func atVerify(t *testing.T, client *MockRegistrationClient) *Wizard {
	t.Helper()
	w := newTestWizard(client)
	client.On("Register", mock.Anything, "+14155551234", mock.Anything).Return(nil).Once()
	w.SetField(FieldPhoneNumber, "+1 (415) 555-1234")
	require.NoError(t, w.SubmitPhone(context.Background()))
	return w
}

// atConfigure advances a fresh wizard past the verify step.
func atConfigure(t *testing.T, client *MockRegistrationClient) *Wizard {
	t.Helper()
	w := atVerify(t, client)
	client.On("Verify", mock.Anything, "+14155551234", "123456", mock.Anything).Return(nil).Once()
	w.SetField(FieldVerificationCode, "123456")
	require.NoError(t, w.SubmitCode(context.Background()))
	return w
}

// --- Tests ---

func TestWizard_EmptyPhoneNeverCalls(t *testing.T) {
	client := new(MockRegistrationClient)
	w := newTestWizard(client)

	err := w.SubmitPhone(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepPhone, w.Step())
	assert.NotEmpty(t, w.Err())
	client.AssertNotCalled(t, "Register")
}

func TestWizard_InvalidPhoneNeverCalls(t *testing.T) {
	client := new(MockRegistrationClient)
	w := newTestWizard(client)
	w.SetField(FieldPhoneNumber, "123")

	err := w.SubmitPhone(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepPhone, w.Step())
	client.AssertNotCalled(t, "Register")
}

func TestWizard_PhoneToVerify(t *testing.T) {
	client := new(MockRegistrationClient)
	w := newTestWizard(client)

	client.On("Register", mock.Anything, "+14155551234", mock.MatchedBy(func(p ports.RegisterParams) bool {
		return p.Captcha == "cap" && p.UseVoice && p.OwnershipSecret == "hunter2"
	})).Return(nil).Once()

	w.SetField(FieldPhoneNumber, "+1 (415) 555-1234")
	w.SetField(FieldCaptcha, "cap")
	w.SetField(FieldOwnershipSecret, "hunter2")
	w.SetUseVoice(true)

	require.NoError(t, w.SubmitPhone(context.Background()))

	assert.Equal(t, domain.StepVerify, w.Step())
	assert.Equal(t, "+14155551234", w.PhoneNumber())
	client.AssertExpectations(t)
}

func TestWizard_FailedRegisterStaysOnPhoneAndEditClears(t *testing.T) {
	client := new(MockRegistrationClient)
	w := newTestWizard(client)

	client.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("captcha required")).Once()

	w.SetField(FieldPhoneNumber, "+14155551234")
	err := w.SubmitPhone(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepPhone, w.Step())
	assert.Equal(t, "captcha required", w.Err())

	// Editing any field of the step clears its error
	w.SetField(FieldPhoneNumber, "+14155551235")
	assert.Empty(t, w.Err())
}

func TestWizard_CodeFieldSanitized(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atVerify(t, client)

	w.SetField(FieldVerificationCode, "12a3b456")
	assert.Equal(t, "123456", w.Form().VerificationCode)

	w.SetField(FieldVerificationCode, "99887766554433")
	assert.Equal(t, "998877", w.Form().VerificationCode)
}

func TestWizard_IncompleteCodeNeverCalls(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atVerify(t, client)

	w.SetField(FieldVerificationCode, "123")
	err := w.SubmitCode(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepVerify, w.Step())
	client.AssertNotCalled(t, "Verify")
}

func TestWizard_VerifyToConfigure(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	assert.Equal(t, domain.StepConfigure, w.Step())
	client.AssertExpectations(t)
}

func TestWizard_BackOnlyFromVerify(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atVerify(t, client)

	require.NoError(t, w.Back(context.Background()))
	assert.Equal(t, domain.StepPhone, w.Step())

	// No backward edge from phone
	assert.Error(t, w.Back(context.Background()))
}

func TestWizard_ConfigureEmptyCompletesWithoutCalls(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	var completedWith string
	w.OnComplete(func(number string) { completedWith = number })

	require.NoError(t, w.SaveProfile(context.Background()))

	assert.Equal(t, domain.StepComplete, w.Step())
	assert.Equal(t, "+14155551234", completedWith)
	client.AssertNotCalled(t, "UpdateProfile")
	client.AssertNotCalled(t, "SetUsername")
}

func TestWizard_SaveProfileDerivesAboutFromModel(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	client.On("UpdateProfile", mock.Anything, "+14155551234", mock.MatchedBy(func(p ports.ProfileParams) bool {
		return p.Name == "Helper" && p.About == "llama-3.1-70b"
	})).Return(nil).Once()

	w.SetField(FieldDisplayName, "Helper")
	require.NoError(t, w.SaveProfile(context.Background()))

	assert.Equal(t, domain.StepComplete, w.Step())
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "SetUsername")
}

func TestWizard_UsernameFailureKeepsConfigureNoRollback(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	client.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	client.On("SetUsername", mock.Anything, "+14155551234", "helper.01", mock.Anything).
		Return("", errors.New("username taken")).Once()

	w.SetField(FieldDisplayName, "Helper")
	w.SetField(FieldUsername, "helper.01")
	err := w.SaveProfile(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.StepConfigure, w.Step())
	assert.Contains(t, w.Err(), "username")
	// The succeeded profile update is not compensated
	client.AssertExpectations(t)
}

func TestWizard_SkipCompletesWithoutCalls(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	w.SetField(FieldDisplayName, "Helper") // entered but skipped
	require.NoError(t, w.Skip(context.Background()))

	assert.Equal(t, domain.StepComplete, w.Step())
	client.AssertNotCalled(t, "UpdateProfile")
}

func TestWizard_NoSecondRequestWhileInFlight(t *testing.T) {
	client := new(MockRegistrationClient)
	w := newTestWizard(client)

	release := make(chan struct{})
	client.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil).Once()

	w.SetField(FieldPhoneNumber, "+14155551234")

	done := make(chan error, 1)
	go func() { done <- w.SubmitPhone(context.Background()) }()

	// Wait until the first submit reports busy
	require.Eventually(t, w.Busy, time.Second, time.Millisecond)

	err := w.SubmitPhone(context.Background())
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.StepVerify, w.Step())
	client.AssertExpectations(t)
}

func TestWizard_NoTransitionOutOfComplete(t *testing.T) {
	client := new(MockRegistrationClient)
	w := atConfigure(t, client)

	require.NoError(t, w.Skip(context.Background()))
	assert.Equal(t, domain.StepComplete, w.Step())

	assert.Error(t, w.SubmitPhone(context.Background()))
	assert.Error(t, w.SubmitCode(context.Background()))
	assert.Error(t, w.SaveProfile(context.Background()))
	assert.Error(t, w.Back(context.Background()))
	assert.Equal(t, domain.StepComplete, w.Step())
}
