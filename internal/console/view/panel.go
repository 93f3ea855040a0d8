package view

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"fmt"
	"strings"
)

// VerificationPanel renders the trust indicators derived from an
// attestation snapshot, with a collapsible technical-details section
// and copy affordances for the raw fields.
type VerificationPanel struct {
	SourceURL       string
	VerifyPortalURL string

	detailsOpen bool
	quoteCopy   *CopyIndicator
	hashCopy    *CopyIndicator
}

// NewVerificationPanel creates a panel with collapsed details.
func NewVerificationPanel(sourceURL, verifyPortalURL string, clip ports.Clipboard) *VerificationPanel {
	return &VerificationPanel{
		SourceURL:       sourceURL,
		VerifyPortalURL: verifyPortalURL,
		quoteCopy:       NewCopyIndicator(clip),
		hashCopy:        NewCopyIndicator(clip),
	}
}

// ToggleDetails flips the technical-details disclosure.
func (p *VerificationPanel) ToggleDetails() {
	p.detailsOpen = !p.detailsOpen
}

// CopyQuote puts the raw base64 quote on the clipboard.
func (p *VerificationPanel) CopyQuote(att *domain.Attestation) error {
	if att == nil || att.TDXQuoteBase64 == "" {
		return fmt.Errorf("no quote available to copy")
	}
	return p.quoteCopy.Copy(att.TDXQuoteBase64)
}

// CopyComposeHash puts the compose hash on the clipboard.
func (p *VerificationPanel) CopyComposeHash(att *domain.Attestation) error {
	if att == nil || att.ComposeHash == "" {
		return fmt.Errorf("no compose hash available to copy")
	}
	return p.hashCopy.Copy(att.ComposeHash)
}

// Close cancels the panel's pending indicator resets.
func (p *VerificationPanel) Close() {
	p.quoteCopy.Stop()
	p.hashCopy.Stop()
}

// Render returns the panel as display text.
func (p *VerificationPanel) Render(att *domain.Attestation) string {
	var b strings.Builder

	b.WriteString("Hardware Attestation\n")
	b.WriteString("--------------------\n")

	if att.InTEE {
		b.WriteString("[ok] Backend is running inside a trusted execution environment (Intel TDX)\n")
	} else {
		b.WriteString("[!!] Backend is NOT running inside a TEE\n")
	}

	if att.Challenge != "" {
		fmt.Fprintf(&b, "[ok] Fresh quote for challenge %q (not a replay)\n", att.Challenge)
	}

	if att.ComposeHash != "" {
		fmt.Fprintf(&b, "compose hash: %s", att.ComposeHash)
		if p.hashCopy.Copied() {
			b.WriteString("  [copied]")
		}
		b.WriteString("\n")
		if p.SourceURL != "" {
			fmt.Fprintf(&b, "  source reference: %s\n", p.SourceURL)
		}
	}
	if att.AppID != "" {
		fmt.Fprintf(&b, "app id: %s\n", att.AppID)
	}

	if verifyURL := p.verificationTarget(att); verifyURL != "" {
		fmt.Fprintf(&b, "verify independently: %s\n", verifyURL)
	}

	if !p.detailsOpen {
		b.WriteString("\n(technical details hidden - 'details' to expand)\n")
		return b.String()
	}

	b.WriteString("\nTechnical details\n")
	if att.TDXQuoteBase64 == "" {
		b.WriteString("  no raw quote in this snapshot\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  tdx quote (base64, %d chars):\n", len(att.TDXQuoteBase64))
	fmt.Fprintf(&b, "  %s", truncate(att.TDXQuoteBase64, 96))
	if p.quoteCopy.Copied() {
		b.WriteString("  [copied]")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderUnavailable is the dedicated view for a failed default query.
// The service is treated as temporarily down, not as bad user input,
// so it carries an explicit retry affordance.
func (p *VerificationPanel) RenderUnavailable(err error) string {
	var b strings.Builder
	b.WriteString("Hardware Attestation\n")
	b.WriteString("--------------------\n")
	b.WriteString("[!!] Attestation is temporarily unavailable.\n")
	if err != nil {
		fmt.Fprintf(&b, "     %s\n", err.Error())
	}
	b.WriteString("Type 'retry' to fetch it again.\n")
	return b.String()
}

// verificationTarget prefers the snapshot's own portal URL and falls
// back to the configured one.
func (p *VerificationPanel) verificationTarget(att *domain.Attestation) string {
	if att.VerificationURL != "" {
		return att.VerificationURL
	}
	return p.VerifyPortalURL
}

// truncate shortens s for single-screen rendering.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
