package attestation

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// defaultKey addresses the unchallenged attestation query.
const defaultKey = ""

// entry is one cached attestation snapshot.
type entry struct {
	att       *domain.Attestation
	fetchedAt time.Time
}

// Service is the cached, re-fetchable attestation query layer.
// Queries are keyed by challenge (empty key = default query), results
// are cached per key for a staleness window, and concurrent identical
// requests collapse into a single fetch. Errors are never cached.
type Service struct {
	client ports.AttestationClient
	bus    ports.EventBus
	ttl    time.Duration
	log    zerolog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry

	// now is swappable for tests.
	now func() time.Time
}

var _ ports.AttestationSource = (*Service)(nil)

// NewService creates the attestation query service.
func NewService(client ports.AttestationClient, bus ports.EventBus, ttl time.Duration, baseLogger *zerolog.Logger) *Service {
	return &Service{
		client:  client,
		bus:     bus,
		ttl:     ttl,
		log:     baseLogger.With().Str("component", "attestation_service").Logger(),
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Default returns the unchallenged attestation, served from cache
// while fresh.
func (s *Service) Default(ctx context.Context) (*domain.Attestation, error) {
	return s.get(ctx, defaultKey)
}

// WithChallenge returns the attestation for a specific challenge
// nonce. The query is inert until a non-empty challenge is supplied:
// a whitespace-only challenge is rejected before any request is made.
func (s *Service) WithChallenge(ctx context.Context, challenge string) (*domain.Attestation, error) {
	challenge = strings.TrimSpace(challenge)
	if challenge == "" {
		return nil, fmt.Errorf("challenge must not be empty")
	}
	return s.get(ctx, challenge)
}

// Refresh drops the default cache entry and re-fetches it.
func (s *Service) Refresh(ctx context.Context) (*domain.Attestation, error) {
	s.mu.Lock()
	delete(s.entries, defaultKey)
	s.mu.Unlock()

	s.log.Info().Msg("Re-fetching default attestation")
	return s.get(ctx, defaultKey)
}

// get serves a key from cache if fresh, otherwise fetches it, with
// concurrent callers for the same key sharing one in-flight request.
func (s *Service) get(ctx context.Context, key string) (*domain.Attestation, error) {
	if att, ok := s.fresh(key); ok {
		return att, nil
	}

	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have
		// populated the cache while we queued.
		if att, ok := s.fresh(key); ok {
			return att, nil
		}

		att, err := s.client.FetchAttestation(ctx, key)
		if err != nil {
			s.log.Error().Err(err).Bool("challenged", key != defaultKey).Msg("Attestation fetch failed")
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = entry{att: att, fetchedAt: s.now()}
		s.mu.Unlock()

		if s.bus != nil {
			s.bus.Publish(ctx, ports.TopicAttestationRefresh, att)
		}
		return att, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.log.Debug().Bool("challenged", key != defaultKey).Msg("Attestation request deduplicated")
	}
	return result.(*domain.Attestation), nil
}

// fresh returns the cached snapshot for key if it is within the
// staleness window.
func (s *Service) fresh(key string) (*domain.Attestation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.att, true
}
