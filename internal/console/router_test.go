package console

import (
	"SignalConsole/internal/shared/config"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockCommandHandler is a mock "plugin" for the router
type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) Command() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockCommandHandler) Summary() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockCommandHandler) Handle(ctx context.Context, cmdArgs []string) error {
	args := m.Called(ctx, cmdArgs)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		ProxyBaseURL:   "http://localhost:8080",
		AttestationTTL: time.Minute,
	}
}

// --- Tests ---

func TestRouter_Dispatch_RoutesToHandler(t *testing.T) {
	// 1. Setup
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader(""), out)

	router := NewRouter(term, &nopLogger)

	botsHandler := new(MockCommandHandler)
	botsHandler.On("Command").Return("bots")
	botsHandler.On("Handle", mock.Anything, []string{}).Return(nil).Once()

	attestHandler := new(MockCommandHandler)
	attestHandler.On("Command").Return("attest")

	// 2. Register handlers
	router.RegisterCommandHandler(botsHandler)
	router.RegisterCommandHandler(attestHandler)

	// 3. Dispatch a line for one of them
	err := router.Dispatch(ctx, "  bots  ")

	// 4. Assert expectations
	require.NoError(t, err)
	botsHandler.AssertExpectations(t)
	attestHandler.AssertNotCalled(t, "Handle")
}

func TestRouter_Dispatch_PassesArgsAndLowercasesCommand(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	router := NewRouter(term, &nopLogger)

	handler := new(MockCommandHandler)
	handler.On("Command").Return("status")
	handler.On("Handle", mock.Anything, []string{"+14155551234"}).Return(nil).Once()
	router.RegisterCommandHandler(handler)

	err := router.Dispatch(ctx, "STATUS +14155551234")

	require.NoError(t, err)
	handler.AssertExpectations(t)
}

func TestRouter_Summaries_SortedByCommand(t *testing.T) {
	nopLogger := zerolog.Nop()
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	router := NewRouter(term, &nopLogger)

	status := new(MockCommandHandler)
	status.On("Command").Return("status")
	status.On("Summary").Return("backend health")
	bots := new(MockCommandHandler)
	bots.On("Command").Return("bots")
	bots.On("Summary").Return("browse the listing")

	router.RegisterCommandHandler(status)
	router.RegisterCommandHandler(bots)

	assert.Equal(t, []string{
		"bots - browse the listing",
		"status - backend health",
	}, router.Summaries())
}

func TestRouter_Dispatch_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader(""), out)
	router := NewRouter(term, &nopLogger)

	err := router.Dispatch(ctx, "frobnicate")

	require.NoError(t, err)
	assert.Contains(t, out.String(), `Unknown command "frobnicate"`)
}

func TestRouter_Dispatch_EmptyLineIsIgnored(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader(""), out)
	router := NewRouter(term, &nopLogger)

	err := router.Dispatch(ctx, "   ")

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRouter_Dispatch_SwallowsHandlerErrors(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader(""), out)
	router := NewRouter(term, &nopLogger)

	handler := new(MockCommandHandler)
	handler.On("Command").Return("bots")
	handler.On("Handle", mock.Anything, []string{}).Return(errors.New("proxy unreachable")).Once()
	router.RegisterCommandHandler(handler)

	err := router.Dispatch(ctx, "bots")

	// The session keeps going; the failure is only reported
	require.NoError(t, err)
	assert.Contains(t, out.String(), "proxy unreachable")
}

func TestRouter_Dispatch_QuitPropagates(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	router := NewRouter(term, &nopLogger)

	handler := new(MockCommandHandler)
	handler.On("Command").Return("quit")
	handler.On("Handle", mock.Anything, []string{}).Return(ErrQuit).Once()
	router.RegisterCommandHandler(handler)

	err := router.Dispatch(ctx, "quit")

	assert.ErrorIs(t, err, ErrQuit)
}

func TestTerminal_ReadLine(t *testing.T) {
	ctx := context.Background()
	term := NewTerminal(strings.NewReader("first\nsecond\n"), &bytes.Buffer{})

	line, err := term.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = term.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = term.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_ReadLine_HonorsContext(t *testing.T) {
	// A reader that never produces a line
	blocked, _ := io.Pipe()
	term := NewTerminal(blocked, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := term.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestServer_Start_QuitEndsSessionGracefully(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader("quit\n"), out)
	router := NewRouter(term, &nopLogger)

	handler := new(MockCommandHandler)
	handler.On("Command").Return("quit")
	handler.On("Handle", mock.Anything, []string{}).Return(ErrQuit).Once()
	router.RegisterCommandHandler(handler)

	srv := NewServer(testConfig(), term, router, &nopLogger)

	err := srv.Start(ctx)

	require.NoError(t, err)
	handler.AssertExpectations(t)
}

func TestServer_Start_EOFEndsSessionGracefully(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	router := NewRouter(term, &nopLogger)
	srv := NewServer(testConfig(), term, router, &nopLogger)

	err := srv.Start(ctx)

	require.NoError(t, err)
}
