package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/config"
	"github.com/xtding233/roulette/internal/httpapi"
	"github.com/xtding233/roulette/internal/metrics"
	"github.com/xtding233/roulette/internal/preset"
	"github.com/xtding233/roulette/internal/rpc"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	m := metrics.New()
	loader := preset.NewLoader(cfg.PresetDir)
	svc := app.NewRouletteService(loader, m, app.Options{
		PublicURL:        cfg.PublicURL,
		MaxTrials:        cfg.MaxTrials,
		RestoreCacheSize: cfg.RestoreCacheSize,
		RestoreCacheTTL:  cfg.RestoreCacheTTL,
	})

	if cfg.PresetReloadInterval > 0 {
		w := preset.NewDirWatcher(loader.Paths().Dir(), cfg.PresetReloadInterval, func(path string) {
			loader.Invalidate()
			m.ObservePresetReload()
			logger.Info("presets reloaded", "path", path)
		})
		w.Start()
		defer w.Stop()
	}

	e := httpapi.NewRouter(svc, logger, m, httpapi.Options{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.WithCORS(e),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Error("grpc listen", "addr", cfg.GRPCAddr, "error", err)
			os.Exit(1)
		}
		grpcSrv = rpc.NewGRPCServer(svc, logger)
		go func() {
			logger.Info("starting grpc server", "addr", cfg.GRPCAddr)
			if err := grpcSrv.Serve(lis); err != nil {
				logger.Error("grpc server error", "error", err)
			}
		}()
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "preset_dir", cfg.PresetDir)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if grpcSrv != nil {
		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}
	}
}
