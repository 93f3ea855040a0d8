package domain

// Attestation is a hardware-attestation snapshot from the backend.
// It is fetched fresh per query key (no challenge, or a specific
// challenge string) and replaced wholesale, never mutated.
type Attestation struct {
	// InTEE reports whether the backend runs inside a trusted
	// execution environment at all.
	InTEE bool

	// ComposeHash identifies the exact deployed software
	// configuration, checked against a public source reference.
	ComposeHash string

	// AppID is the TEE platform's application identifier.
	AppID string

	// TDXQuoteBase64 is the raw base64-encoded TDX quote.
	TDXQuoteBase64 string

	// VerificationURL points at the remote attestation portal
	// where the quote can be independently checked.
	VerificationURL string

	// Challenge is the caller-chosen nonce this quote was generated
	// for. Empty for the default (unchallenged) query.
	Challenge string
}
