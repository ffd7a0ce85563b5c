package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/greyflux/greymcp/pkg/adapters/codesearch/github"
	"github.com/greyflux/greymcp/pkg/config"
	"github.com/greyflux/greymcp/pkg/mcpserver"
	"github.com/greyflux/greymcp/pkg/otel"
	"github.com/greyflux/greymcp/pkg/tool"
	"github.com/greyflux/greymcp/pkg/tools"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	var showVersion bool
	var httpAddr string

	cfg := config.Load()

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&httpAddr, "http", cfg.HTTPAddr, "serve MCP over streamable HTTP on this address instead of stdio")
	flag.Parse()

	if showVersion {
		fmt.Printf("greymcp %s (commit=%s, date=%s)\n", version, commit, date)
		return
	}

	// stdout is the stdio protocol channel, so logs always go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Init(ctx, otel.Config{
		ServiceName:    "greymcp",
		ServiceVersion: version,
		// The stdout exporter would corrupt the stdio framing.
		UseStdout: cfg.TraceStdout && httpAddr != "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "otel init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = shutdown(context.Background()) }()

	srv, err := buildServer(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}

	if httpAddr != "" {
		err = serveHTTP(ctx, log, srv, httpAddr)
	} else {
		log.Info("serving MCP over stdio")
		err = srv.RunStdio(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// buildServer wires the registry, the GitHub search adapter and the
// dispatcher into an MCP server.
func buildServer(cfg config.Config, log *slog.Logger) (*mcpserver.Server, error) {
	reg := tool.NewRegistry()
	search := github.New(cfg.GitHubToken, github.WithTimeout(cfg.SearchTimeout))
	if err := tools.RegisterAll(reg, search); err != nil {
		return nil, err
	}
	return mcpserver.New("greymcp", version, reg, tool.NewDispatcher(reg, log)), nil
}

func serveHTTP(ctx context.Context, log *slog.Logger, srv *mcpserver.Server, addr string) error {
	server := &http.Server{Addr: addr, Handler: srv.HTTPHandler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	log.Info("serving MCP over HTTP", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
