package view

import (
	"fmt"
	"strings"
)

// Hero returns the static informational banner shown at startup and
// by the help command. No logic, content only.
func Hero(captchaURL, sourceURL, verifyPortalURL string) string {
	var b strings.Builder

	b.WriteString("Signal Bot Console\n")
	b.WriteString("==================\n")
	b.WriteString("Register and manage Signal bot accounts backed by a TEE-hosted runtime.\n")
	b.WriteString("Conversations are processed inside attested hardware; nobody, including\n")
	b.WriteString("the operator, can read them.\n\n")

	if captchaURL != "" {
		fmt.Fprintf(&b, "captcha tokens:   %s\n", captchaURL)
	}
	if sourceURL != "" {
		fmt.Fprintf(&b, "deployed source:  %s\n", sourceURL)
	}
	if verifyPortalURL != "" {
		fmt.Fprintf(&b, "verify the quote: %s\n", verifyPortalURL)
	}
	return b.String()
}
