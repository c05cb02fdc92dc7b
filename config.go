package gonigmo

// Config controls engine selection and resource limits.
//
// Example:
//
//	config := gonigmo.DefaultConfig()
//	config.MatchStepLimit = 1_000_000
//	re, err := gonigmo.CompileWithConfig(pattern, gonigmo.OptionNone, config)
type Config struct {
	// MaxBacktrackBits bounds the visited set of the backtracker, in bits.
	// A search uses the backtracker only when
	// instructions * (window+1) <= MaxBacktrackBits; otherwise the PikeVM
	// runs. Zero always selects the PikeVM.
	// Default: 2,097,152 (256 KiB)
	MaxBacktrackBits int

	// MatchStepLimit caps the instruction steps of one search. A search
	// that exceeds it fails with CodeMatchStepLimitOver.
	// Default: 0 (unlimited)
	MatchStepLimit int

	// EnablePrefilter enables literal and first-byte prefilters.
	// Default: true
	EnablePrefilter bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxBacktrackBits: 256 * 1024 * 8,
		MatchStepLimit:   0,
		EnablePrefilter:  true,
	}
}

// Validate checks that the configuration values are in range.
func (c Config) Validate() error {
	if c.MaxBacktrackBits < 0 || c.MaxBacktrackBits > 1<<30 {
		return &ConfigError{
			Field:   "MaxBacktrackBits",
			Message: "must be between 0 and 1,073,741,824",
		}
	}
	if c.MatchStepLimit < 0 {
		return &ConfigError{
			Field:   "MatchStepLimit",
			Message: "must not be negative",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "gonigmo: invalid config: " + e.Field + ": " + e.Message
}
