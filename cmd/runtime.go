package cmd

import (
	"context"
	"fmt"
	"net"

	"github.com/zjrosen/roster/internal/config"
	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/metrics"
	"github.com/zjrosen/roster/internal/registry"
	"github.com/zjrosen/roster/internal/tracing"
)

// runtime holds what both front ends share: the registry, tracing, metrics
// and the debug log.
type runtime struct {
	manager  *registry.Manager
	tracer   *tracing.Provider
	recorder registry.Recorder
	debug    bool

	closers []func()
}

func newRuntime(ctx context.Context, cfg config.Config, debug bool) (_ *runtime, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rt := &runtime{debug: debug}
	defer func() {
		if err != nil {
			rt.Close()
		}
	}()

	if debug {
		closeLog, err := log.Init(debugLogPath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, closeLog)
		log.Info(log.CatConfig, "Starting roster", "version", version, "config", configPath())
	}

	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	rt.tracer = provider
	rt.closers = append(rt.closers, func() { _ = provider.Shutdown(context.Background()) })

	rt.manager = registry.NewManager()
	rt.closers = append(rt.closers, rt.manager.Close)

	if cfg.Metrics.Addr != "" {
		m := metrics.New()
		ln, err := net.Listen("tcp", cfg.Metrics.Addr)
		if err != nil {
			return nil, fmt.Errorf("listening for metrics on %s: %w", cfg.Metrics.Addr, err)
		}
		srvCtx, cancel := context.WithCancel(context.Background())
		go func() { _ = m.Serve(srvCtx, ln) }()
		rt.closers = append(rt.closers, cancel)
		rt.recorder = m
	}

	if cfg.SeedFile != "" {
		entries, err := registry.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		rt.manager.Import(entries)
		if rt.recorder != nil {
			rt.recorder.SetRecords(rt.manager.Count())
		}
	}

	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
