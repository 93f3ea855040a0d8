package main

import (
	"SignalConsole/internal/adapters/clipboard"
	"SignalConsole/internal/adapters/eventbus"
	"SignalConsole/internal/adapters/proxyapi"
	"SignalConsole/internal/attestation"
	"SignalConsole/internal/console"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"SignalConsole/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Register all console command handlers via their init() functions
	_ "SignalConsole/internal/console/handlers"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().Msg("Logger initialized")

	// 3. Print loaded config
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("proxy_base_url", cfg.ProxyBaseURL).
		Dur("attestation_ttl", cfg.AttestationTTL).
		Msg("Configuration loaded")

	// 4. Initialize the Event Bus
	bus := eventbus.NewInMemoryEventBus(&baseLogger)

	// Mirror bus traffic into the log so sessions are auditable.
	bus.Subscribe(ports.TopicStepChanged, func(ctx context.Context, event ports.Event) error {
		if step, ok := event.Data.(ports.StepChangedEvent); ok {
			baseLogger.Info().Str("from", step.From).Str("to", step.To).Msg("Wizard step changed")
		}
		return nil
	})
	bus.Subscribe(ports.TopicRegistrationDone, func(ctx context.Context, event ports.Event) error {
		baseLogger.Info().Msg("Registration completed")
		return nil
	})

	// 5. Initialize the Proxy Client and Attestation Service
	client := proxyapi.NewClient(cfg, &baseLogger)
	attestSvc := attestation.NewService(client, bus, cfg.AttestationTTL, &baseLogger)

	// 6. Wire the console session over stdin/stdout
	term := console.NewTerminal(os.Stdin, os.Stdout)
	router := console.NewRouter(term, &baseLogger)

	deps := &console.Deps{
		Registration: client,
		Attestation:  attestSvc,
		Terminal:     term,
		Clipboard:    clipboard.NewSystemClipboard(&baseLogger),
		Bus:          bus,
	}
	console.RegisterAllHandlers(cfg, router, deps, &baseLogger)

	baseLogger.Info().Msg("All services initialized successfully")

	// 7. Run until quit or interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := console.NewServer(cfg, term, router, &baseLogger)
	if err := server.Start(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("Console session failed")
	}
}
