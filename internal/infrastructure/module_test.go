package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
)

func TestBuildLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := BuildLogger(tt.level)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestLoggerModule(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"

	var logger *zap.Logger
	app := fxtest.New(t,
		fx.Supply(cfg),
		LoggerModule,
		fx.Populate(&logger),
	)

	app.RequireStart()
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	app.RequireStop()
}
