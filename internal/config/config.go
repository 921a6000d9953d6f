// Package config loads runtime settings from defaults, an optional config
// file, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vacmar/portfolio/internal/roadmap"
)

// SMTP holds the contact form mail relay settings.
type SMTP struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

// Configured reports whether credentials are present.
func (s SMTP) Configured() bool { return s.User != "" && s.Pass != "" }

// Roadmap tunes the roadmap views.
type Roadmap struct {
	ScrollSettle time.Duration `mapstructure:"scroll_settle"`
	RemoveOnExit bool          `mapstructure:"remove_on_exit"`
	Particles    int           `mapstructure:"particles"`
	Seed         uint64        `mapstructure:"seed"`
}

// ViewOptions maps the settings onto roadmap.Options. A particle count of
// zero disables particles.
func (r Roadmap) ViewOptions() roadmap.Options {
	particles := r.Particles
	if particles <= 0 {
		particles = -1
	}
	return roadmap.Options{
		Tracker:      roadmap.TrackerOptions{RemoveOnExit: r.RemoveOnExit},
		ScrollSettle: r.ScrollSettle,
		Particles:    particles,
		Seed:         r.Seed,
	}
}

type Log struct {
	Development bool `mapstructure:"development"`
}

// Config holds all runtime configuration for the site.
// Values come from portfolio.yaml, the environment (PORT, SMTP_HOST, ...)
// and CLI flags bound by the commands.
type Config struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	StaticDir       string        `mapstructure:"static_dir"`
	ImagesDir       string        `mapstructure:"images_dir"`
	AudioDir        string        `mapstructure:"audio_dir"`
	ResumePath      string        `mapstructure:"resume_path"`
	Content         string        `mapstructure:"content"`
	SessionKey      string        `mapstructure:"session_key"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
	ViewIdleTimeout time.Duration `mapstructure:"view_idle_timeout"`
	ToEmail         string        `mapstructure:"to_email"`
	SMTP            SMTP          `mapstructure:"smtp"`
	Roadmap         Roadmap       `mapstructure:"roadmap"`
	Log             Log           `mapstructure:"log"`
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// SetDefaults registers built-in defaults and environment binding on v.
// Nested keys map to upper-case variables with dots replaced by
// underscores, so smtp.host reads SMTP_HOST.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("mode", "release")
	v.SetDefault("static_dir", "./static")
	v.SetDefault("images_dir", "./images")
	v.SetDefault("audio_dir", "./audio")
	v.SetDefault("resume_path", "./static/resume.pdf")
	v.SetDefault("content", "")
	v.SetDefault("session_key", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("view_idle_timeout", "30m")
	v.SetDefault("to_email", "contact@vaaheesan.dev")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("roadmap.scroll_settle", "100ms")
	v.SetDefault("roadmap.remove_on_exit", false)
	v.SetDefault("roadmap.particles", 15)
	v.SetDefault("roadmap.seed", 1)
	v.SetDefault("log.development", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid mode %q", c.Mode))
	}
	if c.ViewIdleTimeout <= 0 {
		errs = append(errs, errors.New("view_idle_timeout must be positive"))
	}
	if c.Roadmap.ScrollSettle < 0 {
		errs = append(errs, errors.New("roadmap.scroll_settle must not be negative"))
	}
	return errors.Join(errs...)
}
