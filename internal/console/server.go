package console

import (
	"SignalConsole/internal/console/view"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Server runs the interactive console loop: read a line, dispatch it,
// repeat until quit, EOF or context cancellation.
type Server struct {
	cfg    *config.Config
	term   ports.Terminal
	router *Router
	log    zerolog.Logger
}

// NewServer creates a new console server instance.
func NewServer(cfg *config.Config, term ports.Terminal, router *Router, baseLogger *zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		term:   term,
		router: router,
		log:    baseLogger.With().Str("component", "console_server").Logger(),
	}
}

// Start runs the loop. It blocks until the session ends and returns
// nil on a graceful quit.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info().Msg("Starting console session")

	s.term.Print(view.Hero(s.cfg.CaptchaURL, s.cfg.SourceURL, s.cfg.VerifyPortalURL))
	s.term.Print("\nType 'help' for the command list.\n")

	for {
		s.term.Print("> ")
		line, err := s.term.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				s.term.Print("\n")
				s.log.Info().Msg("Console session ended")
				return nil
			}
			s.log.Error().Err(err).Msg("Failed to read input")
			return err
		}

		if err := s.router.Dispatch(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
				s.log.Info().Msg("Console session ended")
				return nil
			}
			return err
		}
	}
}
