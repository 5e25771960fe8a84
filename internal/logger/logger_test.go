package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leodymann/wi-api/internal/logger"
)

func TestNew(t *testing.T) {
	t.Run("json output carries static attributes", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "api")),
		)

		log.Info("test message", logger.Component("test"))

		output := buf.String()
		assert.Contains(t, output, "test message")
		assert.Contains(t, output, `"service":"api"`)
		assert.Contains(t, output, `"component":"test"`)
	})

	t.Run("development preset tags the app and enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("wi-api"), logger.WithOutput(&buf))

		log.Debug("debugging")

		output := buf.String()
		assert.Contains(t, output, "app=wi-api")
		assert.Contains(t, output, "debugging")
	})

	t.Run("production preset drops debug records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("wi-api"), logger.WithOutput(&buf))

		log.Debug("hidden")
		log.Info("visible")

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "visible")
	})

	t.Run("level option overrides preset", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithProduction("wi-api"),
			logger.WithLevel(slog.LevelError),
			logger.WithOutput(&buf),
		)

		log.Info("hidden")
		log.Error("visible")

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "visible")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestAttrHelpers(t *testing.T) {
	t.Run("nil error produces an empty attribute", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.True(t, attr.Equal(slog.Attr{}))
	})

	t.Run("empty identifiers produce empty attributes", func(t *testing.T) {
		assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
		assert.True(t, logger.ClientIP("").Equal(slog.Attr{}))
		assert.True(t, logger.UserAgent("").Equal(slog.Attr{}))
		assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
	})

	t.Run("group nests attributes under one key", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))

		log.Info("configured", logger.Group("server",
			slog.String("addr", "0.0.0.0:8000"),
		))

		assert.Contains(t, buf.String(), `"server":{"addr":"0.0.0.0:8000"}`)
	})
}
