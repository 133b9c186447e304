package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/procureflow/pr-service/internal/approval"
	"github.com/procureflow/pr-service/internal/cache"
	"github.com/procureflow/pr-service/internal/config"
	"github.com/procureflow/pr-service/internal/filter"
	httpserver "github.com/procureflow/pr-service/internal/interfaces/http"
	"github.com/procureflow/pr-service/internal/policy"
	"github.com/procureflow/pr-service/internal/rules"
	"github.com/procureflow/pr-service/internal/summarizer"
	"github.com/procureflow/pr-service/pkg/database"
	"github.com/procureflow/pr-service/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	// Load .env before anything reads the environment
	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting PR processing service",
		zap.String("role", cfg.Policy.Role),
		zap.Int("port", cfg.Server.Port))

	// Key-value store backing the permission cache
	db, err := database.New(database.Config{
		Path:            cfg.Cache.Path,
		MaxOpenConns:    cfg.Cache.MaxOpenConns,
		MaxIdleConns:    cfg.Cache.MaxIdleConns,
		ConnMaxLifetime: cfg.Cache.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache store", zap.Error(err))
	}
	defer db.Close()

	store, err := cache.NewSQLiteStore(db)
	if err != nil {
		logger.Fatal("Failed to initialize key-value store", zap.Error(err))
	}

	// Static configuration: policy, rules and the requisition collection
	configStore := policy.NewStore(policy.Config{
		PermissionsPath:  cfg.Policy.PermissionsPath,
		RulesPath:        cfg.Policy.RulesPath,
		RequisitionsPath: cfg.Policy.RequisitionsPath,
	}, logger)

	permissionPolicy, err := configStore.LoadPolicy()
	if err != nil {
		logger.Fatal("Failed to load permission policy", zap.Error(err))
	}
	ruleSet, err := configStore.LoadRules()
	if err != nil {
		logger.Fatal("Failed to load rule set", zap.Error(err))
	}
	requisitions, err := configStore.LoadRequisitions()
	if err != nil {
		logger.Fatal("Failed to load requisition collection", zap.Error(err))
	}

	// Warm the permission cache once at startup; reads before this completes
	// miss rather than see defaults
	permissionCache := cache.NewPermissionCache(store, logger)
	if err := permissionCache.Warm(context.Background(), permissionPolicy); err != nil {
		logger.Fatal("Failed to warm permission cache", zap.Error(err))
	}

	// Core components
	router := approval.NewRouter(logger)
	engine := rules.NewEngine(cfg.Policy.ApprovalThreshold, router, logger)
	filterSvc := filter.NewService(logger)

	prSummarizer := summarizer.New(summarizer.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
	}, logger)

	handlers := httpserver.NewHandlers(
		engine,
		router,
		permissionCache,
		configStore,
		filterSvc,
		prSummarizer,
		ruleSet,
		requisitions,
		cfg.Policy.Role,
		logger,
	)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	// Run until interrupted, then shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
