package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peekpost/peekpost/app/api"
	"github.com/peekpost/peekpost/app/cfg"
	"github.com/peekpost/peekpost/app/instagram"
	"github.com/peekpost/peekpost/app/monitor"
	"github.com/peekpost/peekpost/app/transcribe"
	"github.com/peekpost/peekpost/app/youtube"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting PeekPost server", "version", cfg.GetVersion())

	if err := monitor.Init(); err != nil {
		slog.Warn("Error monitoring disabled", "error", err)
	}
	defer monitor.Flush()

	// Wire up core components
	scraper := instagram.NewScraper(instagram.NewClient())
	extractor := youtube.NewExtractor()
	downloader := youtube.NewDownloader()
	transcriber := transcribe.NewOrchestrator(transcribe.NewDeepgramClient())

	apiHandler := api.NewHandler(scraper, extractor, downloader, transcriber)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		monitor.Notify(err, "")
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
