// Package logger provides a thin factory around Go's slog package with
// functional options and helper attribute constructors.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - WithEnvironment – per-environment defaults plus service/env attributes.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   - WithLevel – minimum level.
//   - WithOutput – destination writer (stderr by default).
//   - WithAttr – static attributes.
//
// Helper constructors in attr.go (Entity, Property, Rule, State, File, Count,
// Error, ...) keep attribute names consistent across the schema loader and
// the command line tools.
//
// # Usage
//
//	settings := config.MustLoad()
//	level, _ := settings.Level()
//	log := logger.New(
//	    logger.WithEnvironment(settings.Env, settings.Service),
//	    logger.WithLevel(level),
//	)
//	log.Info("schema loaded", logger.Entity("order"), logger.Count(12))
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("validation finished", logger.Error(err))
//
// needs no nil check.
package logger
