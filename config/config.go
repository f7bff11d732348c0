// Package config loads refine controller options from YAML files and can
// watch them for changes, so scheduling delays are tunable without a
// rebuild.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/quietframe/refine"
)

// Duration is a time.Duration that unmarshals from YAML duration strings
// ("33ms", "1.5s"). Negative values are rejected; an empty string is zero.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if parsed < 0 {
		return fmt.Errorf("duration must be >= 0, got %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// File is the on-disk configuration for a refine controller.
type File struct {
	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string `yaml:"log_level"`

	// ThrottleDelay is the minimum spacing between draft renders.
	// Zero means the package default.
	ThrottleDelay Duration `yaml:"throttle_delay"`

	// DebounceDelay is the quiet period before a full render.
	// Zero means the package default.
	DebounceDelay Duration `yaml:"debounce_delay"`
}

// ControllerOptions maps the file onto refine.Options. Zero-valued delays
// stay zero so the controller's own defaults apply; render callbacks,
// scheduler and logger are the caller's to fill in.
func (f *File) ControllerOptions() refine.Options {
	return refine.Options{
		ThrottleDelay: f.ThrottleDelay.Std(),
		DebounceDelay: f.DebounceDelay.Std(),
	}
}

// Load reads and strictly decodes the YAML file at path. Unknown keys are
// an error.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		// An empty file is a valid config with all defaults.
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &f, nil
}
