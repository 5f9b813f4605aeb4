package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jhn78/framework/pkg/validator"
)

// Environment names accepted in APP_ENV.
const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// Settings are the process-wide options of the validation framework. They
// are set once at startup and never toggled afterwards.
type Settings struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_SERVICE" envDefault:"rulecheck"`

	// Strict enforces rules declared with DisableOnCorrupt. Turn it off only
	// while legacy data that predates a rule is being migrated.
	Strict bool `env:"VALIDATION_STRICT" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

var (
	cacheMu    sync.Mutex
	cached     *Settings
	dotenvOnce sync.Once
)

// Load reads the default .env file (if any) and the environment into
// Settings. The first successful result is cached for the lifetime of the
// process.
func Load() (Settings, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	s, err := Parse()
	if err != nil {
		return Settings{}, err
	}
	cached = &s
	return s, nil
}

// MustLoad works like Load but panics if the settings are invalid.
// The framework must not start with a misconfigured strict flag.
func MustLoad() Settings {
	s, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load settings: %v", err))
	}
	return s
}

// LoadFile loads the given .env files into the environment, without
// overriding variables that are already set, and parses Settings. The
// result is not cached.
func LoadFile(paths ...string) (Settings, error) {
	if err := godotenv.Load(paths...); err != nil {
		return Settings{}, errors.Join(ErrLoadingEnvFile, err)
	}
	return Parse()
}

// Parse reads Settings from the current environment without touching the cache.
func Parse() (Settings, error) {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return Settings{}, errors.Join(ErrParsingConfig, err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ResetCache drops the cached Settings so the next Load parses again.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
}

func (s Settings) validate() error {
	switch s.Env {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("%w: APP_ENV %q", ErrInvalidSettings, s.Env)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalidSettings, s.LogFormat)
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	return nil
}

// Validation returns the configuration threaded into validation calls.
func (s Settings) Validation() validator.Config {
	return validator.Config{Lenient: !s.Strict}
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidSettings, s.LogLevel)
	}
	return l, nil
}

// IsProduction reports whether the service runs in production.
func (s Settings) IsProduction() bool {
	return s.Env == Production
}
