// Package main provides the interactive console shell for operating a
// Minecraft Bedrock dedicated server through a tmux session.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/config"
	"github.com/cory-johannsen/bedrockctl/internal/console/command"
	"github.com/cory-johannsen/bedrockctl/internal/console/handlers"
	"github.com/cory-johannsen/bedrockctl/internal/console/terminal"
	"github.com/cory-johannsen/bedrockctl/internal/observability"
	"github.com/cory-johannsen/bedrockctl/internal/server"
	"github.com/cory-johannsen/bedrockctl/internal/session"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting console",
		zap.String("db", cfg.Storage.Path),
		zap.String("session", cfg.Session.Name),
	)

	// Ensure the schema; a fresh database file is valid and starts empty.
	if err := sqlite.Migrate(cfg.Storage.Path); err != nil {
		logger.Fatal("migrating database", zap.Error(err))
	}

	dbStart := time.Now()
	store, err := sqlite.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	resourceRepo := sqlite.NewResourceRepository(store.DB())
	settingRepo := sqlite.NewSettingRepository(store.DB())
	positionRepo := sqlite.NewPositionRepository(store.DB())
	commandRepo := sqlite.NewCommandRepository(store.DB())

	// Load the reference catalog.
	entries, err := resourceRepo.List(ctx)
	if err != nil {
		logger.Fatal("loading reference catalog", zap.Error(err))
	}
	cat := catalog.New(entries)

	serverCommands, err := commandRepo.List(ctx)
	if err != nil {
		logger.Fatal("loading server command reference", zap.Error(err))
	}

	logger.Info("database loaded",
		zap.Int("resources", cat.Len()),
		zap.Int("commands", len(serverCommands)),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	// The tmux_session setting, when present, overrides the configured name.
	sessionName := cfg.Session.Name
	if override, err := settingRepo.Get(ctx, sqlite.SettingTmuxSession); err == nil && override != "" {
		logger.Info("using tmux session from settings", zap.String("session", override))
		sessionName = override
	}

	// Startup status is informational: the transport is optimistic and a
	// missing session only fails individual sends.
	status := terminal.Status{
		SessionName:  sessionName,
		SessionFound: session.Probe(ctx, sessionName, logger),
	}
	if proc, ok := session.FindServerProcess(logger); ok {
		status.ProcessPID = proc.PID
		status.ProcessCmdline = proc.Cmdline
	}

	transport := session.NewTransport(cfg.Session, sessionName, logger)
	registry := command.DefaultRegistry()

	out := terminal.NewOutput(os.Stdout)
	console := handlers.NewConsole(
		cat, registry, settingRepo, positionRepo, transport,
		out, logger, cfg.Console.SuggestionLimit,
	)
	completer := terminal.NewCompleter(cat, registry, settingRepo, positionRepo, serverCommands)
	consoleSvc := terminal.NewService(console, completer, out, cfg.Console.Prompt, status, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("store", &server.FuncService{
		StartFn: func() error {
			for {
				time.Sleep(30 * time.Second)
				if err := store.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			_ = store.Close()
		},
	})
	lifecycle.Add("console", consoleSvc)

	logger.Info("console initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("console error", zap.Error(err))
	}
}
