package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhn78/framework/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("rule", slog.String("type", "email"), slog.Int("n", 2))
	require.Equal(t, "rule", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "type", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, slog.String("entity", "order"), logger.Entity("order"))
	assert.Equal(t, slog.String("property", "email"), logger.Property("email"))
	assert.Equal(t, slog.String("rule", "not_null"), logger.Rule("not_null"))
	assert.Equal(t, slog.String("file", "schema.yaml"), logger.File("schema.yaml"))
	assert.Equal(t, slog.Int("count", 3), logger.Count(3))
	assert.Equal(t, "shipped", logger.State("shipped").Value.Any())
	assert.True(t, logger.State(nil).Equal(slog.Attr{}))
}
