// Package message composes the timestamped publish commit message.
package message

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DefaultPrefix is the historical commit message prefix of the weather site.
	DefaultPrefix = "Oppdatering"

	// timestampLayout renders year-month-day hour:minute, zero padded,
	// independent of the system locale.
	timestampLayout = "2006-01-02 15:04"
)

// pattern matches the messages this composer produces with the default prefix.
var pattern = regexp.MustCompile(`^Oppdatering \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// Composer builds commit messages of the form "<prefix> YYYY-MM-DD HH:MM".
// The clock is injected so tests control the timestamp.
type Composer struct {
	prefix string
	now    func() time.Time
}

// NewComposer creates a Composer with the given prefix.
// An empty prefix falls back to DefaultPrefix.
func NewComposer(prefix string) *Composer {
	return NewComposerWithClock(prefix, time.Now)
}

// NewComposerWithClock creates a Composer with an explicit clock.
func NewComposerWithClock(prefix string, now func() time.Time) *Composer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &Composer{prefix: prefix, now: now}
}

// Compose returns the commit message for the current local time.
func (c *Composer) Compose() string {
	return fmt.Sprintf("%s %s", c.prefix, c.now().Format(timestampLayout))
}

// IsPublishMessage reports whether s looks like a default publish commit message.
func IsPublishMessage(s string) bool {
	return pattern.MatchString(s)
}
