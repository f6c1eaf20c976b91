// Package translation turns a single-language product submission into a
// complete set of bundles, one per supported language.
package translation

import "time"

// Defaults applied when Config leaves a value unset.
const (
	DefaultCallTimeout   = 10 * time.Second
	DefaultMaxConcurrent = 8
)

// Config tunes provider usage.
type Config struct {
	// CallTimeout bounds a single provider call.
	CallTimeout time.Duration
	// MaxConcurrent caps in-flight provider calls per submission.
	MaxConcurrent int
}

func (c Config) effectiveCallTimeout() time.Duration {
	if c.CallTimeout > 0 {
		return c.CallTimeout
	}
	return DefaultCallTimeout
}

func (c Config) effectiveMaxConcurrent() int {
	if c.MaxConcurrent > 0 {
		return c.MaxConcurrent
	}
	return DefaultMaxConcurrent
}
