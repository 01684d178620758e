package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/tofu639/ToDoDemo/internal/api/http/context"
	"github.com/tofu639/ToDoDemo/internal/api/http/router"
	httpServer "github.com/tofu639/ToDoDemo/internal/api/http/server"
	"github.com/tofu639/ToDoDemo/internal/config"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
	"github.com/tofu639/ToDoDemo/internal/password"
	"github.com/tofu639/ToDoDemo/internal/repository/postgres"
	"github.com/tofu639/ToDoDemo/internal/server"
	"github.com/tofu639/ToDoDemo/internal/service"
	"github.com/tofu639/ToDoDemo/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout = 10 * time.Second
	idleTimeout     = 120 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set, token issuance and verification will fail")
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.ConnString(), logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	userService := service.NewUser(userRepo, hasher, logger)
	authService := service.NewAuth(userService, hasher, tokenManager, logger)
	ctxMgr := httpctx.NewManager()

	handler := router.New(authService, userService, tokenManager, ctxMgr, db, router.Options{
		Production:     cfg.IsProduction(),
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Version:        buildVersion,
	}, logger).Register()

	srv := httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.Options{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}, logger)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "environment", cfg.Environment, "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
