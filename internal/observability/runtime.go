package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/config"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

// Runtime owns the process-wide telemetry: the OTel exporter, the profiler
// and the optional pprof listener.
type Runtime struct {
	logger        *logging.Logger
	stopUptrace   func(context.Context) error
	stopPyroscope func() error
	pprofServer   *http.Server
}

func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	stopUptrace, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}

	stopPyroscope, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopUptrace(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	return &Runtime{
		logger:        logger,
		stopUptrace:   stopUptrace,
		stopPyroscope: stopPyroscope,
		pprofServer:   StartPprofServer(cfg, logger),
	}, nil
}

// Shutdown stops everything in reverse start order and returns every failure.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if err := stopPprofServer(ctx, r.pprofServer); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof: %w", err))
	}
	if err := r.stopPyroscope(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := r.stopUptrace(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop uptrace: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		r.logger.Warn("observability shutdown incomplete", "error", err)
	}
	return err
}
