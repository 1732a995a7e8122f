package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mlorentedev/reword/internal/adapter"
	"github.com/mlorentedev/reword/internal/config"
	"github.com/mlorentedev/reword/internal/server"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	useMock := flag.Bool("mock", false, "use mock adapter instead of the model provider")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatal("env: load .env", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *useMock {
		cfg.Provider = config.ProviderMock
	}
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel))

	systemPrompt, err := config.LoadSystemPrompt(cfg.PromptPath)
	if err != nil {
		fatal("startup", err)
	}

	rw, err := buildAdapter(context.Background(), cfg, systemPrompt)
	if err != nil {
		fatal("adapter", err)
	}
	if c, ok := rw.(io.Closer); ok {
		defer c.Close()
	}
	slog.Info("adapter ready", "provider", cfg.Provider, "adapter", rw.Name())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: server.SetupMux(rw, server.Options{
			PublicDir:       cfg.PublicDir,
			MaxBodyBytes:    cfg.MaxBodyBytes,
			UpstreamTimeout: cfg.UpstreamTimeout,
			Version:         version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("reword listening", "url", fmt.Sprintf("http://localhost:%d", cfg.Port), "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("server", err)
		}
	}()

	<-done
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
		return
	}
	slog.Info("server stopped")
}

// buildAdapter constructs the single model client shared by every request.
func buildAdapter(ctx context.Context, cfg config.Config, systemPrompt string) (adapter.Rewriter, error) {
	model := cfg.ModelName()

	switch cfg.Provider {
	case config.ProviderGemini:
		return adapter.NewGeminiAdapter(ctx, cfg.APIKey, model, systemPrompt)
	case config.ProviderClaude:
		return &adapter.ClaudeAdapter{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     model,
			System:    systemPrompt,
			MaxTokens: cfg.MaxTokens,
			Client:    &http.Client{},
		}, nil
	case config.ProviderOpenAI:
		return &adapter.OpenAIAdapter{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     model,
			System:    systemPrompt,
			MaxTokens: cfg.MaxTokens,
			Client:    &http.Client{},
		}, nil
	case config.ProviderMock:
		return &adapter.MockAdapter{Delay: 500 * time.Millisecond}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

func newLogger(w io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
