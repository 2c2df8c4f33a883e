// cmd/web/serve.go
//
// Jeevan – HTTP server start-up.
//
// Boot sequence
// -------------
//
//  1. Vault client when VAULT_ADDR is set, so `vault:` config values resolve.
//
//  2. Config (.env → conf/global.yaml → JEEVAN_ env), then the daily
//     rotating logger (tees to console when running in a TTY).
//
//  3. Tracing, site content, optional stats DB, optional GeoIP reader.
//
//  4. Components built with explicit Deps and mounted on one router.
//
//  5. Server and shutdown watcher run in an errgroup.  SIGINT or SIGTERM
//     drains in-flight requests; SIGHUP reloads config and applies the
//     new log level.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/jeevan/components/donation"
	"github.com/yanizio/jeevan/components/home"
	"github.com/yanizio/jeevan/components/placeholder"
	"github.com/yanizio/jeevan/internal/component"
	"github.com/yanizio/jeevan/internal/config"
	"github.com/yanizio/jeevan/internal/database"
	"github.com/yanizio/jeevan/internal/form"
	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/message"
	"github.com/yanizio/jeevan/internal/notify"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/server"
	"github.com/yanizio/jeevan/internal/site"
	"github.com/yanizio/jeevan/internal/stats"
	"github.com/yanizio/jeevan/internal/tracing"
	"github.com/yanizio/jeevan/internal/vault"
	"github.com/yanizio/jeevan/internal/view"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func serve(ctx context.Context) error {
	//
	// ── 1.  Secrets and config ──────────────────────────────────────────
	//
	var (
		secrets config.SecretResolver
		vc      *vault.Client
	)
	if os.Getenv("VAULT_ADDR") != "" {
		var err error
		if vc, err = vault.New(ctx, zap.S()); err != nil {
			return err
		}
		secrets = vc
	}

	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Paths.Root, runningInTTY(), cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if vc != nil {
		vc.SetLogger(log.Named("vault"))
	}

	//
	// ── 2.  Collaborators ───────────────────────────────────────────────
	//
	shutdownTracing, err := tracing.Setup(cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}

	content, err := site.Load(cfg.Site.ContentPath)
	if err != nil {
		return err
	}

	var src stats.Source
	if cfg.Database.StatsDSN != "" {
		db, err := database.Open(ctx, cfg.Database.StatsDSN)
		if err != nil {
			log.Warnw("stats DB unavailable, using built-in counters", "err", err)
		} else {
			defer db.Close()
			src = stats.NewSQLStore(db)
		}
	}

	var geo *requestinfo.Geo
	if cfg.GeoIP.DBPath != "" {
		if geo, err = requestinfo.OpenGeo(cfg.GeoIP.DBPath); err != nil {
			log.Warnw("geolocation disabled", "err", err)
		}
		defer geo.Close()
	}

	eng, err := view.New()
	if err != nil {
		return err
	}

	deps := &component.Deps{
		View:      eng,
		Site:      content,
		Stats:     stats.NewService(src, content.Stats),
		Alerts:    notify.NewStore(cfg.Alerts.TTL),
		Tokens:    form.NewTokens(cfg.CSRF.Key, cfg.CSRF.MaxAge, log),
		Publisher: message.LogPublisher{Log: log},
		Locale:    cfg.Site.Locale,
	}

	handler := server.NewRouter(server.Options{
		Log:        log,
		ForceHTTPS: cfg.HTTP.ForceHTTPS,
		Geo:        geo,
		Components: []component.Component{
			home.New(deps),
			donation.New(deps),
			placeholder.New(deps),
		},
	})
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	log.Infow("Welcome to "+content.Title, "tagline", content.Tagline)

	//
	// ── 3.  Run until signalled ─────────────────────────────────────────
	//
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Infow("shutting down", "timeout", cfg.HTTP.ShutdownTimeout)
		return errors.Join(srv.Shutdown(sctx), shutdownTracing(sctx))
	})

	g.Go(func() error {
		watchReload(gctx, secrets, log)
		return nil
	})

	return g.Wait()
}

// watchReload re-reads config on SIGHUP until ctx ends.  Only the log level
// is applied live; other settings need a restart.
func watchReload(ctx context.Context, secrets config.SecretResolver, log *zap.SugaredLogger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := config.Reload(ctx, secrets); err != nil {
				log.Errorw("config reload failed", "err", err)
				continue
			}
			logger.SetLevel(config.Get().Log.Level)
			log.Infow("config reloaded", "log_level", config.Get().Log.Level)
		}
	}
}
