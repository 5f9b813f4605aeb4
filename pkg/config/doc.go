// Package config loads the process-wide settings of the validation framework
// from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Load reads the default `.env` file in the working directory (if
//     present) and parses the environment into Settings, caching the result.
//   - LoadFile reads explicit `.env` files and parses without caching.
//   - MustLoad panics on failure; the host should not start with invalid
//     settings.
//
// # Settings
//
//	APP_ENV            development | staging | production (default development)
//	APP_SERVICE        service name attached to log records (default rulecheck)
//	VALIDATION_STRICT  enforce DisableOnCorrupt rules (default true)
//	LOG_LEVEL          debug | info | warn | error (default info)
//	LOG_FORMAT         text | json (default text)
//
// # Usage
//
//	settings := config.MustLoad()
//	cfg := settings.Validation()
//	err := constraint.Validate("E-mail", user.Email, cfg)
//
// The strict flag is read once at startup and passed explicitly into every
// validation call through validator.Config; nothing in the rule engine reads
// the environment.
package config
