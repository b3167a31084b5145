package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("visible", slog.String("k", "v"))
	rec := decode(t, &buf)
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_Environment(t *testing.T) {
	t.Parallel()

	t.Run("production logs json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(logger.Production, "portal"))

		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("hello")
		rec := decode(t, &buf)
		assert.Equal(t, "portal", rec["service"])
		assert.Equal(t, "production", rec["env"])
	})

	t.Run("development logs text at debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(logger.Development, "portal"))

		log.Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestParseEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want logger.Environment
	}{
		{in: "production", want: logger.Production},
		{in: "PROD", want: logger.Production},
		{in: "staging", want: logger.Staging},
		{in: "stage", want: logger.Staging},
		{in: "development", want: logger.Development},
		{in: "", want: logger.Development},
		{in: "anything", want: logger.Development},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseEnvironment(tt.in))
		})
	}

	assert.True(t, logger.Production.IsProduction())
	assert.False(t, logger.Staging.IsProduction())
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("trace", ctxKey{}),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("static", "yes"), true
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
	log.With(slog.String("with", "1")).InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	assert.Equal(t, "abc", rec["trace"])
	assert.Equal(t, "yes", rec["static"])
	assert.Equal(t, "1", rec["with"])

	buf.Reset()
	log.InfoContext(context.Background(), "no value")
	rec = decode(t, &buf)
	assert.NotContains(t, rec, "trace")
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
	assert.Equal(t, slog.Attr{}, logger.MemberID(""))
	assert.Equal(t, "rec1", logger.MemberID("rec1").Value.String())
	assert.Equal(t, "auth", logger.Component("auth").Value.String())
	assert.Equal(t, "magic_link.sent", logger.Event("magic_link.sent").Value.String())
	assert.Equal(t, "a***@example.com", logger.Email("alice@example.com").Value.String())
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a***@b.com", logger.MaskEmail("a@b.com"))
	assert.Equal(t, "j***@example.org", logger.MaskEmail("jean.dupont@example.org"))
	assert.Equal(t, "***", logger.MaskEmail("no-at-sign"))
	assert.Equal(t, "***", logger.MaskEmail("@example.org"))
	assert.Equal(t, "", logger.MaskEmail(""))
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { logger.Discard().Error("dropped") })
}
