// Package config holds the timing and layout constants of the page layer and
// the settings of the site tooling.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Timings are the delays the controllers chain their transitions on.
//
// Transition must match the CSS transition duration of .projects-item and
// .form-alert: the filter waits it out before setting display:none and a
// banner is removed that long after it starts fading.
type Timings struct {
	ShowDelay      time.Duration `koanf:"show_delay" yaml:"show_delay"`
	Transition     time.Duration `koanf:"transition" yaml:"transition"`
	SubmitDelay    time.Duration `koanf:"submit_delay" yaml:"submit_delay"`
	BannerLifetime time.Duration `koanf:"banner_lifetime" yaml:"banner_lifetime"`
}

// Layout holds the viewport-dependent thresholds.
type Layout struct {
	MobileBreakpoint float64 `koanf:"mobile_breakpoint" yaml:"mobile_breakpoint"`
	DefaultNavHeight float64 `koanf:"default_nav_height" yaml:"default_nav_height"`
	SectionThreshold float64 `koanf:"section_threshold" yaml:"section_threshold"`
	SectionMargin    float64 `koanf:"section_margin" yaml:"section_margin"`
}

// Serve configures `site serve`.
type Serve struct {
	Listen          string `koanf:"listen" yaml:"listen"`
	Dir             string `koanf:"dir" yaml:"dir"`
	AllowAllOrigins bool   `koanf:"allow_all_origins" yaml:"allow_all_origins"`
}

// Log configures the tooling logger.
type Log struct {
	Level string `koanf:"level" yaml:"level"`
}

// Config is the full configuration.
type Config struct {
	Timings Timings `koanf:"timings" yaml:"timings"`
	Layout  Layout  `koanf:"layout" yaml:"layout"`
	Serve   Serve   `koanf:"serve" yaml:"serve"`
	Log     Log     `koanf:"log" yaml:"log"`
}

// Default returns the values the site ships with.
func Default() *Config {
	return &Config{
		Timings: Timings{
			ShowDelay:      50 * time.Millisecond,
			Transition:     300 * time.Millisecond,
			SubmitDelay:    1500 * time.Millisecond,
			BannerLifetime: 5000 * time.Millisecond,
		},
		Layout: Layout{
			MobileBreakpoint: 768,
			DefaultNavHeight: 80,
			SectionThreshold: 0.5,
			SectionMargin:    100,
		},
		Serve: Serve{
			Listen: "127.0.0.1:4173",
			Dir:    "site",
		},
		Log: Log{Level: "info"},
	}
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	t := c.Timings
	if t.ShowDelay < 0 {
		return fmt.Errorf("timings.show_delay must be non-negative")
	}
	if t.Transition <= 0 {
		return fmt.Errorf("timings.transition must be positive")
	}
	if t.SubmitDelay < 0 {
		return fmt.Errorf("timings.submit_delay must be non-negative")
	}
	if t.BannerLifetime <= 0 {
		return fmt.Errorf("timings.banner_lifetime must be positive")
	}
	if t.ShowDelay >= t.Transition {
		return fmt.Errorf("timings.show_delay (%s) must be shorter than timings.transition (%s)", t.ShowDelay, t.Transition)
	}

	l := c.Layout
	if l.MobileBreakpoint <= 0 {
		return fmt.Errorf("layout.mobile_breakpoint must be positive")
	}
	if l.DefaultNavHeight < 0 {
		return fmt.Errorf("layout.default_nav_height must be non-negative")
	}
	if l.SectionThreshold < 0 || l.SectionThreshold > 1 {
		return fmt.Errorf("layout.section_threshold must be within [0, 1], got %v", l.SectionThreshold)
	}
	if l.SectionMargin < 0 {
		return fmt.Errorf("layout.section_margin must be non-negative")
	}

	if strings.TrimSpace(c.Serve.Listen) == "" {
		return fmt.Errorf("serve.listen is required")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
