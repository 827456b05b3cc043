package logger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"console stdout", &Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "15:04:05"}},
		{"json stderr", &Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "15:04:05"}},
		{"unknown level falls back to info", &Config{Level: "verbose", Format: "json", Output: "stdout", TimeFormat: "15:04:05"}},
		{"zero config uses defaults", &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestConfigLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, (&Config{Level: "debug"}).level())
	assert.Equal(t, zapcore.WarnLevel, (&Config{Level: "WARNING"}).level())
	assert.Equal(t, zapcore.ErrorLevel, (&Config{Level: "error"}).level())
	assert.Equal(t, zapcore.InfoLevel, (&Config{Level: "bogus"}).level())
	assert.Equal(t, zapcore.InfoLevel, (&Config{}).level())
}

func TestDefaultTimeFormat(t *testing.T) {
	enc := (&Config{Format: "json"}).encoder()

	at := time.Date(2026, 8, 30, 10, 30, 0, 250_000_000, time.UTC)
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    at,
		Message: "hello",
	}, nil)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, at.Format(DefaultTimeFormat), entry["time"])
}

func TestContextEnrichment(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx := WithContext(context.Background(), base)
	ctx = context.WithValue(ctx, RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, SessionIDKey, "sess-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "sess-1", GetSessionID(ctx))

	L(ctx).Info("hello")
	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
}

func TestFromContextFallback(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	// no-op logger must not panic
	l.Info("ignored")
}
