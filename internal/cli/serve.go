package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/covspace/site/internal/cms"
	"github.com/covspace/site/internal/config"
	"github.com/covspace/site/internal/content"
	sitehttp "github.com/covspace/site/internal/http"
	"github.com/covspace/site/internal/http/handlers"
	"github.com/covspace/site/internal/metrics"
	"github.com/covspace/site/internal/pkg/redact"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the site and metrics HTTP servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := setupLogger(a.cfg.Env, os.Stdout)
			slog.SetDefault(log)
			log.Info("starting site", "env", a.cfg.Env)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.HTTP.Addr())
			if err != nil {
				log.Error("http_listen_failed", slog.String("addr", a.cfg.HTTP.Addr()), slog.String("err", err.Error()))
				return err
			}

			mln, err := net.Listen("tcp", a.cfg.Metrics.Addr())
			if err != nil {
				_ = ln.Close()
				log.Error("metrics_listen_failed", slog.String("addr", a.cfg.Metrics.Addr()), slog.String("err", err.Error()))
				return err
			}

			return serve(ctx, a.cfg, log, ln, mln)
		},
	}
}

// serve поднимает сайт и метрики на готовых листенерах и ждёт ctx.Done()
// или падения одного из серверов, затем корректно гасит оба.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, ln, mln net.Listener) error {
	const op = "cli.serve"

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client, err := cms.New(cfg.CMS.BaseURL,
		cms.WithTimeout(cfg.CMS.Timeout),
		cms.WithUserAgent(cfg.CMS.UserAgent),
		cms.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("cms_client_initialized",
		slog.String("base_url", redact.URL(client.BaseURL())),
		slog.Duration("timeout", cfg.CMS.Timeout),
	)

	proxy, err := handlers.NewCMSProxy(client.BaseURL(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var ready atomic.Bool

	svc := content.New(client, cfg.Home, content.WithMetrics(m))
	router := sitehttp.NewRouter(handlers.New(svc, cfg.Site.QuoteURL), sitehttp.Options{
		Logger:    log,
		Timeout:   cfg.Timeouts.Request,
		RateRPS:   cfg.RateLimit.RPS,
		RateBurst: cfg.RateLimit.Burst,
		CMSProxy:  proxy,
		Ready:     ready.Load,
	})

	httpSrv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	metricsSrv := &http.Server{
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http_listen_start", slog.String("addr", ln.Addr().String()))
		return serveHTTP(httpSrv, ln)
	})
	g.Go(func() error {
		log.Info("metrics_listen_start", slog.String("addr", mln.Addr().String()))
		return serveHTTP(metricsSrv, mln)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_requested")

		ready.Store(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
		defer cancel()

		errs := errors.Join(httpSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
		if errs != nil {
			log.Warn("http_shutdown_incomplete", slog.String("err", errs.Error()))
		} else {
			log.Info("http_stopped")
		}

		return errs
	})

	ready.Store(true)
	log.Info("site_ready")

	err = g.Wait()
	log.Info("service_stopped")

	return err
}

func serveHTTP(srv *http.Server, ln net.Listener) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
