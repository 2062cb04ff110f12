package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/cricket-scorecard/internal/config"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

// Telemetry owns the log sinks, tracing, profiling and pprof started for the
// process. Logger is the logger every other component should use.
type Telemetry struct {
	Logger     *logging.Logger
	components []component
}

// Setup starts every enabled telemetry component. On failure the components
// already started are stopped again.
func Setup(ctx context.Context, cfg config.Config, base *logging.Logger) (*Telemetry, error) {
	if base == nil {
		base = logging.NewJSON(cfg.LogLevel)
	}

	logger, flushLogs, err := InitBetterStackLogger(cfg, base)
	if err != nil {
		return nil, fmt.Errorf("init betterstack: %w", err)
	}

	t := &Telemetry{Logger: logger}
	t.add("betterstack", flushLogs)

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{"uptrace", initUptrace},
		{"pyroscope", startPyroscope},
		{"pprof", startPprof},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("init %s: %w", s.name, err)
		}
		t.add(s.name, stop)
	}

	return t, nil
}

func (t *Telemetry) add(name string, stop stopFunc) {
	if stop == nil {
		return
	}
	t.components = append(t.components, component{name: name, stop: stop})
}

// Shutdown stops components in reverse start order, so log shipping is
// drained last. It is safe to call more than once.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.components) - 1; i >= 0; i-- {
		c := t.components[i]
		if err := c.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.name, err))
		}
	}
	t.components = nil
	return errors.Join(errs...)
}
