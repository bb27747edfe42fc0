package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/ordering"
)

// Validate checks the decoded configuration. Problems the content builder can
// recover from are recorded in Warnings; the rest return a ConfigError.
func (c *SiteConfig) Validate() error {
	for i, entry := range c.Pages {
		if _, ok := ordering.EntryName(entry); !ok {
			return invalid("pages", fmt.Sprintf("entry %d must be a name or a one-key mapping", i))
		}
	}
	for segment, target := range c.Mounts {
		if target == "" {
			return invalid("mounts", fmt.Sprintf("mount %q has no target", segment))
		}
	}
	for _, pattern := range append(append([]string(nil), c.Ignore...), c.Watch.Ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			c.warn(fmt.Sprintf("ignoring invalid ignore pattern %q", pattern))
		}
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return invalid("events.url", "required when events are enabled")
	}
	if c.Watch.Interval < 0 {
		return invalid("watch.interval", "must not be negative")
	}
	return nil
}

func invalid(field, msg string) error {
	return ferrors.ConfigError(fmt.Sprintf("invalid %s: %s", field, msg)).
		WithContext("field", field).
		Build()
}
