package prompt

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/source"
)

// Theme carries the prefixes put in front of composer messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is set.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "! "}

// Option configures a Composer.
type Option func(*Composer)

// WithPromptDriver overrides the prompt driver used by the composer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Composer) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithLoader enables the import action.
func WithLoader(loader source.Loader) Option {
	return func(c *Composer) {
		c.loader = loader
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Composer) {
		c.theme = theme
	}
}

// WithLogger sets the structured logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}
