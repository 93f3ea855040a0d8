package ports

import (
	"SignalConsole/internal/core/domain"
	"context"
)

// AttestationClient fetches a single attestation snapshot over the
// wire. An empty challenge requests the default (unchallenged) quote.
type AttestationClient interface {
	FetchAttestation(ctx context.Context, challenge string) (*domain.Attestation, error)
}

// AttestationSource is the cached, re-fetchable view over an
// AttestationClient. Consumers read from it; they never mutate it.
type AttestationSource interface {
	// Default returns the unchallenged attestation, served from
	// cache while fresh.
	Default(ctx context.Context) (*domain.Attestation, error)

	// WithChallenge returns the attestation for a specific challenge
	// nonce. The challenge is trimmed first; a trimmed-empty
	// challenge is rejected without issuing any request.
	WithChallenge(ctx context.Context, challenge string) (*domain.Attestation, error)

	// Refresh drops the default cache entry and re-fetches it.
	// This backs the manual retry affordance.
	Refresh(ctx context.Context) (*domain.Attestation, error)
}
