package view

import (
	"SignalConsole/internal/core/ports"
	"sync"
	"time"
)

// copiedResetDelay is how long the "copied" indicator stays lit.
const copiedResetDelay = 2 * time.Second

// CopyIndicator couples a clipboard write with a transient "copied"
// flag that resets itself after a fixed window. Every copy restarts
// the countdown; Stop cancels a pending reset so a closed view never
// leaks its timer.
type CopyIndicator struct {
	clip  ports.Clipboard
	delay time.Duration

	mu     sync.Mutex
	copied bool
	timer  *time.Timer
}

// NewCopyIndicator creates an indicator over the given clipboard.
func NewCopyIndicator(clip ports.Clipboard) *CopyIndicator {
	return &CopyIndicator{clip: clip, delay: copiedResetDelay}
}

// Copy writes text to the clipboard and lights the indicator. A copy
// during the reset window restarts the countdown.
func (c *CopyIndicator) Copy(text string) error {
	if err := c.clip.WriteText(text); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.copied = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		c.copied = false
		c.mu.Unlock()
	})
	return nil
}

// Copied reports whether the indicator is currently lit.
func (c *CopyIndicator) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Stop cancels any pending reset and clears the indicator.
func (c *CopyIndicator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.copied = false
}
