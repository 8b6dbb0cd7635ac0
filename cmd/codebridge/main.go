// CodeBridge connects an editor to Claude-aware tooling: it speaks LSP
// on stdin/stdout, debounces selection changes into notifications, and
// fans those notifications out to WebSocket, MCP and NATS consumers.
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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Strob0t/CodeBridge/internal/adapter/editorcli"
	cbhttp "github.com/Strob0t/CodeBridge/internal/adapter/http"
	cblsp "github.com/Strob0t/CodeBridge/internal/adapter/lsp"
	cbmcp "github.com/Strob0t/CodeBridge/internal/adapter/mcp"
	cbnats "github.com/Strob0t/CodeBridge/internal/adapter/nats"
	"github.com/Strob0t/CodeBridge/internal/adapter/ws"
	"github.com/Strob0t/CodeBridge/internal/config"
	"github.com/Strob0t/CodeBridge/internal/domain/command"
	"github.com/Strob0t/CodeBridge/internal/fanout"
	"github.com/Strob0t/CodeBridge/internal/logger"
	"github.com/Strob0t/CodeBridge/internal/service"
	"github.com/Strob0t/CodeBridge/internal/textrange"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// stdout carries the LSP transport, so logs go to stderr.
	log, logCloser := logger.New(cfg.Logging)
	slog.SetDefault(log)
	defer logCloser.Close()

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"editor", cfg.Editor.Command,
		"quiet_period", cfg.Debounce.QuietPeriod,
		"log_level", cfg.Logging.Level,
	)

	// --- Notification pipeline ---

	feed := fanout.New()
	defer feed.Close()

	extractor, err := textrange.NewExtractor(cfg.Cache.MaxSizeMB*1024*1024, cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("range cache: %w", err)
	}
	defer extractor.Close()

	debouncer := service.NewDebouncer(feed, cfg.Debounce.QuietPeriod)
	debouncer.Start()

	// --- Command intake ---

	commands := make(chan command.Command, 64)
	dispatcher := service.NewDispatcher(editorcli.New(cfg.Editor.Command), commands)
	dispatcher.Start()

	// --- Optional NATS forwarding ---

	if cfg.NATS.URL != "" {
		forwarder, err := cbnats.Connect(cfg.NATS.URL, cfg.NATS.Subject, feed)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = forwarder.Close() }()
	}

	// --- HTTP surface ---

	hub := ws.NewHub(feed)
	mcpSrv := cbmcp.NewServer(
		cbmcp.ServerConfig{Name: "codebridge", Version: version},
		cbmcp.ServerDeps{Commands: commands, Feed: feed},
	)

	r := chi.NewRouter()
	r.Use(cbhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(cbhttp.SecurityHeaders)
	r.Use(cbhttp.RequestID)
	r.Use(cbhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	cbhttp.MountRoutes(r, cbhttp.Services{
		WS:   hub.HandleWS,
		MCP:  cbmcp.AuthMiddleware(cfg.MCP.APIKey, mcpSrv.Handler()),
		Feed: feed,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Language server on stdio ---

	lspSrv := cblsp.NewServer(cblsp.NewConn(stdio{}), extractor, debouncer, feed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := lspSrv.Serve()
		// The editor went away; wind the rest down too.
		stop()
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown failed", "error", err)
		}

		debouncer.Close()
		close(commands)
		<-dispatcher.Done()
		return nil
	})

	return g.Wait()
}

// stdio joins os.Stdin and os.Stdout into the ReadWriteCloser the LSP
// connection expects.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return os.Stdin.Close() }
