package isoabbrev

import "fmt"

// ConfigError signals that a rule table or an exempt-word list could not
// serve as the basis of an Engine, e.g. because it is empty or contains no
// parseable entries. No partially loaded index is returned alongside it.
type ConfigError struct {
	Source string // which input was rejected, e.g. "ltwa" or "shortwords"
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("isoabbrev: configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("isoabbrev: configuration error in %s: %s", e.Source, e.Reason)
}
