package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sinkdns/internal/api"
	"sinkdns/internal/api/handlers"
	"sinkdns/internal/config"
)

// Runner orchestrates sinkhole startup, the optional management API, and
// shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run starts the sinkhole with the given configuration and blocks until
// SIGINT/SIGTERM or a fatal server error.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext starts the sinkhole and blocks until ctx is canceled or a
// server error occurs.
//
// Lifecycle:
//  1. Build the responder from the validated config (fixed address + TTL)
//  2. Start the UDP server loop
//  3. Start the management API if enabled
//  4. Wait for cancellation or error
//  5. Stop the UDP loop and shut the API down gracefully
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	addr4, err := cfg.Answer.IPv4()
	if err != nil {
		return err
	}

	stats := NewStats()
	responder := &Responder{
		Logger: r.logger,
		Addr:   addr4,
		TTL:    cfg.Answer.TTL,
		Stats:  stats,
	}
	udp := &UDPServer{Logger: r.logger, Responder: responder}

	bindAddr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	r.logStartup(cfg, bindAddr)

	errCh := make(chan error, 2)
	go func() { errCh <- udp.Run(ctx, bindAddr) }()

	var apiSrv *api.Server
	if cfg.API.Enabled {
		apiSrv = r.startAPI(cfg, stats, errCh)
	}

	select {
	case <-ctx.Done():
		// shutdown requested via signal
	case err := <-errCh:
		if err != nil {
			cancelRun()
			udp.Stop()
			r.stopAPI(apiSrv)
			return err
		}
	}

	udp.Stop()
	r.stopAPI(apiSrv)
	return nil
}

// startAPI wires the stats snapshot into the API handlers and starts the
// HTTP server in the background.
func (r *Runner) startAPI(cfg *config.Config, stats *Stats, errCh chan<- error) *api.Server {
	apiSrv := api.New(cfg, r.logger)
	apiSrv.Handlers().SetDNSStatsFunc(func() handlers.DNSStatsSnapshot {
		snap := stats.Snapshot()
		return handlers.DNSStatsSnapshot{
			QueriesTotal:   snap.QueriesTotal,
			Answered:       snap.Answered,
			NotImplemented: snap.NotImplemented,
			Dropped:        snap.Dropped,
			AvgLatencyMs:   snap.AvgLatencyMs,
		}
	})

	if r.logger != nil {
		r.logger.Info("management api listening", "addr", apiSrv.Addr())
	}
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return apiSrv
}

func (r *Runner) stopAPI(apiSrv *api.Server) {
	if apiSrv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
}

// logStartup logs the effective configuration at startup.
func (r *Runner) logStartup(cfg *config.Config, addr string) {
	if r.logger != nil {
		r.logger.Info(
			"dns sinkhole listening",
			"addr", addr,
			"answer", cfg.Answer.Address,
			"ttl", cfg.Answer.TTL,
			"api", cfg.API.Enabled,
		)
	}
}
