package infrastructure_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Raikerian/go-discord-bootstrap/pkg/infrastructure"
)

func TestNewFxLoggerAdapter(t *testing.T) {
	adapter := infrastructure.NewFxLoggerAdapter(zaptest.NewLogger(t))
	require.NotNil(t, adapter)

	var _ fxevent.Logger = adapter
}

func TestFxLoggerAdapter_LevelsByEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := infrastructure.NewFxLoggerAdapter(zap.New(core))
	testErr := errors.New("boom")

	adapter.LogEvent(&fxevent.Provided{OutputTypeNames: []string{"*zap.Logger"}, ModuleName: "logger"})
	adapter.LogEvent(&fxevent.OnStartExecuted{FunctionName: "start", CallerName: "bootstrap", Runtime: time.Millisecond})
	adapter.LogEvent(&fxevent.OnStartExecuted{FunctionName: "start", CallerName: "bootstrap", Err: testErr})
	adapter.LogEvent(&fxevent.Started{})
	adapter.LogEvent(&fxevent.Stopping{Signal: os.Interrupt})
	adapter.LogEvent(&fxevent.RollingBack{StartErr: testErr})

	entries := logs.All()
	require.Len(t, entries, 6)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "provided", entries[0].Message)
	assert.Equal(t, "logger", entries[0].ContextMap()["module"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "OnStart hook failed", entries[2].Message)

	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
	assert.Equal(t, "started", entries[3].Message)

	assert.Equal(t, zapcore.InfoLevel, entries[4].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[5].Level)

	for _, e := range entries {
		assert.Equal(t, "fx", e.LoggerName)
	}
}

func TestFxLoggerAdapter_Printf(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	printer := infrastructure.NewFxPrinter(zap.New(core))

	printer.Printf("hello %s", "world")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello world", logs.All()[0].Message)
}

func TestFxIntegration(t *testing.T) {
	logger := zaptest.NewLogger(t)

	app := fx.New(
		fx.WithLogger(infrastructure.NewFxLoggerAdapter),
		fx.Provide(func() *zap.Logger { return logger }),
		fx.Invoke(func(*zap.Logger) {}),
	)

	require.NoError(t, app.Err())
}
