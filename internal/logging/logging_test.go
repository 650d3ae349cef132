package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/logging"
)

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "footprint.log")

	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "debug",
		Format: logging.FormatJSON,
		Output: logging.OutputFile,
		File:   path,
	})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Debug().Str("region", "United Arab Emirates").Msg("hello")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"region":"United Arab Emirates"`)
}

func TestNewLoggerWithPath_FallbackOnBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	result := logging.NewLoggerWithPath(logging.Config{
		Output: logging.OutputFile,
		File:   filepath.Join(blocker, "nested", "footprint.log"),
	})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestNewLogger_LevelDefaults(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := logging.NewLogger(logging.Config{Level: tt.level})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("no logger yields disabled logger", func(t *testing.T) {
		l := logging.FromContext(context.Background())
		require.NotNil(t, l)
		assert.Equal(t, zerolog.Disabled, l.GetLevel())
	})

	t.Run("logger with trace id", func(t *testing.T) {
		var buf bytes.Buffer
		base := zerolog.New(&buf)
		ctx := base.WithContext(context.Background())
		ctx = logging.ContextWithTraceID(ctx, "01TRACE")

		logging.FromContext(ctx).Info().Msg("tagged")

		assert.Contains(t, buf.String(), `"trace_id":"01TRACE"`)
	})
}

func TestTraceIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	generated := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26, "ULID strings are 26 characters")

	ctx = logging.ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, logging.GetOrGenerateTraceID(ctx))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.ComponentLogger(zerolog.New(&buf), "cli")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"cli"`)
}
