package view

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"fmt"
	"strings"
)

// BotCard renders one bot's public identity with an expand/collapse
// disclosure for the identity key. Disclosure state is per card.
type BotCard struct {
	Bot      domain.Bot
	expanded bool
	copy     *CopyIndicator
}

// NewBotCard creates a collapsed card for one bot.
func NewBotCard(bot domain.Bot, clip ports.Clipboard) *BotCard {
	return &BotCard{Bot: bot, copy: NewCopyIndicator(clip)}
}

// Toggle flips the disclosure open or closed.
func (c *BotCard) Toggle() {
	c.expanded = !c.expanded
}

// Expanded reports the disclosure state.
func (c *BotCard) Expanded() bool {
	return c.expanded
}

// CopyIdentityKey puts the bot's identity key on the clipboard and
// lights the card's transient indicator.
func (c *BotCard) CopyIdentityKey() error {
	if c.Bot.IdentityKey == "" {
		return fmt.Errorf("bot %s has no identity key", c.Bot.Username)
	}
	return c.copy.Copy(c.Bot.IdentityKey)
}

// Copied reports whether the copy indicator is currently lit.
func (c *BotCard) Copied() bool {
	return c.copy.Copied()
}

// Close cancels the card's pending indicator reset.
func (c *BotCard) Close() {
	c.copy.Stop()
}

// Render returns the card as display text.
func (c *BotCard) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "@%s", c.Bot.Username)
	if c.Bot.Model != "" {
		fmt.Fprintf(&b, "  [%s]", domain.DeriveAbout(c.Bot.Model))
	}
	b.WriteString("\n")

	if c.Bot.Description != "" {
		fmt.Fprintf(&b, "  %s\n", c.Bot.Description)
	}
	fmt.Fprintf(&b, "  %s\n", c.Bot.SignalLink)

	if c.Bot.IdentityKey == "" {
		return b.String()
	}

	if !c.expanded {
		b.WriteString("  identity key: (hidden)\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  identity key: %s", c.Bot.IdentityKey)
	if c.copy.Copied() {
		b.WriteString("  [copied]")
	}
	b.WriteString("\n")
	return b.String()
}
