// Package config loads the fmcompose CLI configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
)

// DefaultPath is read when no path is given and the file exists.
const DefaultPath = "fmcompose.yaml"

type TemplatesConfig struct {
	Dir     string   `yaml:"dir"`
	Sources []string `yaml:"sources"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	NameTemplate string `yaml:"name_template"`
	Body         string `yaml:"body"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	File     string `yaml:"file"`
}

type SessionConfig struct {
	ResetAfterSubmit bool     `yaml:"reset_after_submit"`
	SanitizeWidgets  []string `yaml:"sanitize_widgets"`
}

type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"`
}

type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Templates: TemplatesConfig{Dir: "templates"},
		Output: OutputConfig{
			Dir:          ".",
			NameTemplate: frontmatter.DefaultNameTemplate,
		},
		Log: LogConfig{Level: "info", Encoding: "console"},
		Session: SessionConfig{
			SanitizeWidgets: []string{string(descriptor.WidgetMarkdown)},
		},
		HTTP: HTTPConfig{Timeout: "10s"},
	}
}

// Load reads path over the defaults. An empty path reads DefaultPath when it
// exists and falls back to the defaults otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught by decoding.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.HTTPTimeout(); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.Session.SanitizeWidgets {
		if !descriptor.Widget(name).Valid() {
			errs = append(errs, fmt.Errorf("config: session.sanitize_widgets: unknown widget %q", name))
		}
	}
	switch strings.ToLower(c.Log.Encoding) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log.encoding: unknown encoding %q", c.Log.Encoding))
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, errors.New("config: output.dir is required"))
	}
	return errors.Join(errs...)
}

// HTTPTimeout parses http.timeout. Empty means no timeout.
func (c Config) HTTPTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.HTTP.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: http.timeout: %w", err)
	}
	return d, nil
}

// Widgets converts session.sanitize_widgets.
func (c Config) Widgets() []descriptor.Widget {
	out := make([]descriptor.Widget, 0, len(c.Session.SanitizeWidgets))
	for _, name := range c.Session.SanitizeWidgets {
		out = append(out, descriptor.Widget(name))
	}
	return out
}
