package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/frontdesk/internal/cli"
	"github.com/alexanderramin/frontdesk/internal/db"
	"github.com/alexanderramin/frontdesk/internal/httpapi"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
	"github.com/alexanderramin/frontdesk/internal/llm"
	"github.com/alexanderramin/frontdesk/internal/repository"
	"github.com/alexanderramin/frontdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	logger := newLogger(os.Stderr, os.Getenv("FRONTDESK_LOG_FORMAT"))

	dbPath, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	guidance := intelligence.DefaultGuidance()
	if path := os.Getenv("FRONTDESK_GUIDANCE"); path != "" {
		if guidance, err = intelligence.LoadGuidance(path); err != nil {
			return fmt.Errorf("loading guidance: %w", err)
		}
	}

	llmCfg := llm.LoadConfig()
	var llmObserver llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		llmObserver = llm.NewSlogObserver(logger)
	}
	client, err := llm.NewClient(ctx, llmCfg, llmObserver)
	if err != nil {
		// Sessions and content stay usable; replies degrade until configured.
		logger.Warn("completion provider not configured", "provider", llmCfg.Provider, "error", err)
		client = unconfiguredClient{err: err}
	}

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	contentRepo := repository.NewCachedContentRepo(repository.NewSQLiteContentRepo(database))
	leadDetailsRepo := repository.NewSQLiteLeadDetailsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(logger)
	frontDesk := service.NewFrontDeskService(sessionRepo, contentRepo, intelligence.NewExtractor(client, guidance), observer)
	gin.SetMode(gin.ReleaseMode)
	server := httpapi.NewServer(frontDesk, logger)

	app := &cli.App{
		FrontDesk:   frontDesk,
		Leads:       service.NewLeadService(sessionRepo, contentRepo, leadDetailsRepo, intelligence.NewLeadExtractor(client), observer),
		Content:     service.NewContentService(contentRepo, uow, observer),
		Serve:       server.ListenAndServe,
		DefaultAddr: envOr("FRONTDESK_ADDR", ":8000"),
		Preflight:   client.Available,
		Logger:      logger,
		Stdin:       os.Stdin,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// resolveDBPath returns FRONTDESK_DB or ~/.frontdesk/frontdesk.db.
func resolveDBPath() (string, error) {
	if p := os.Getenv("FRONTDESK_DB"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".frontdesk", "frontdesk.db"), nil
}

func newLogger(w io.Writer, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

type unconfiguredClient struct{ err error }

func (c unconfiguredClient) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, c.err)
}

func (unconfiguredClient) Available(context.Context) bool { return false }
