package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Entity records the validated entity type under the key "entity".
func Entity(name string) slog.Attr {
	return slog.String("entity", name)
}

// Property records a property name under the key "property".
func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Rule records a rule type under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// State records a lifecycle state under the key "state".
// If state is nil, it returns an empty Attr.
func State(state any) slog.Attr {
	if state == nil {
		return slog.Attr{}
	}
	return slog.Any("state", state)
}

// File records a file path under the key "file".
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
