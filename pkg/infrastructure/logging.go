// Package infrastructure provides reusable infrastructure components for Go applications.
package infrastructure

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLoggerAdapter routes Fx's own events and printer output to a zap logger.
// Wiring noise (provides, invokes, hook timings) goes to debug; failures and
// the start/stop milestones go to error and info.
type FxLoggerAdapter struct {
	logger *zap.Logger
}

// NewFxLoggerAdapter returns an fxevent.Logger backed by logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// NewFxPrinter returns an fx.Printer backed by logger.
func NewFxPrinter(logger *zap.Logger) fx.Printer {
	return &FxLoggerAdapter{logger: logger.Named("fx")}
}

// LogEvent implements fxevent.Logger.
func (p *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		p.logger.Debug("OnStart hook executing",
			zap.String("callee", e.FunctionName), zap.String("caller", e.CallerName))
	case *fxevent.OnStartExecuted:
		p.hookResult("OnStart", e.FunctionName, e.CallerName, e.Runtime.String(), e.Err)
	case *fxevent.OnStopExecuting:
		p.logger.Debug("OnStop hook executing",
			zap.String("callee", e.FunctionName), zap.String("caller", e.CallerName))
	case *fxevent.OnStopExecuted:
		p.hookResult("OnStop", e.FunctionName, e.CallerName, e.Runtime.String(), e.Err)
	case *fxevent.Supplied:
		p.wiring("supplied", e.Err, zap.String("type", e.TypeName), moduleField(e.ModuleName))
	case *fxevent.Provided:
		p.wiring("provided", e.Err,
			zap.Strings("types", e.OutputTypeNames),
			zap.String("constructor", e.ConstructorName),
			moduleField(e.ModuleName))
	case *fxevent.Decorated:
		p.wiring("decorated", e.Err,
			zap.Strings("types", e.OutputTypeNames),
			zap.String("decorator", e.DecoratorName),
			moduleField(e.ModuleName))
	case *fxevent.Invoking:
		p.logger.Debug("invoking", zap.String("function", e.FunctionName), moduleField(e.ModuleName))
	case *fxevent.Invoked:
		p.wiring("invoked", e.Err, zap.String("function", e.FunctionName), moduleField(e.ModuleName))
	case *fxevent.Stopping:
		p.logger.Info("received signal", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		p.milestone("stopped", e.Err)
	case *fxevent.RollingBack:
		p.logger.Error("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		p.milestone("rolled back", e.Err)
	case *fxevent.Started:
		p.milestone("started", e.Err)
	case *fxevent.LoggerInitialized:
		p.wiring("logger initialized", e.Err, zap.String("constructor", e.ConstructorName))
	default:
		p.logger.Debug("unhandled fx event", zap.String("event", fmt.Sprintf("%T", event)))
	}
}

// Printf implements fx.Printer.
func (p *FxLoggerAdapter) Printf(format string, args ...any) {
	p.logger.Sugar().Infof(format, args...)
}

func (p *FxLoggerAdapter) hookResult(hook, callee, caller, runtime string, err error) {
	if err != nil {
		p.logger.Error(hook+" hook failed",
			zap.String("callee", callee), zap.String("caller", caller), zap.Error(err))

		return
	}
	p.logger.Debug(hook+" hook executed",
		zap.String("callee", callee), zap.String("caller", caller), zap.String("runtime", runtime))
}

func (p *FxLoggerAdapter) wiring(msg string, err error, fields ...zap.Field) {
	if err != nil {
		p.logger.Error(msg+" with error", append(fields, zap.Error(err))...)

		return
	}
	p.logger.Debug(msg, fields...)
}

func (p *FxLoggerAdapter) milestone(msg string, err error) {
	if err != nil {
		p.logger.Error(msg+" with error", zap.Error(err))

		return
	}
	p.logger.Info(msg)
}

func moduleField(name string) zap.Field {
	if name == "" {
		return zap.Skip()
	}

	return zap.String("module", name)
}
