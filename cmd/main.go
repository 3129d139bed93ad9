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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpctx "github.com/inklet/inklet-server/internal/api/http/context"
	"github.com/inklet/inklet-server/internal/api/http/handler"
	"github.com/inklet/inklet-server/internal/api/http/middleware"
	"github.com/inklet/inklet-server/internal/api/http/router"
	"github.com/inklet/inklet-server/internal/config"
	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
	"github.com/inklet/inklet-server/internal/repository/postgres"
	"github.com/inklet/inklet-server/internal/server"
	"github.com/inklet/inklet-server/internal/service"
	"github.com/inklet/inklet-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	authService := service.NewAuth(userRepo, tokenManager, logger)
	noteService := service.NewNote(noteRepo, logger)
	ctxMgr := httpctx.NewManager()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.New(
		handler.NewAuth(authService, ctxMgr, logger),
		handler.NewNote(noteService, ctxMgr, logger),
		middleware.NewAuthenticate(tokenManager, ctxMgr, logger),
		middleware.NewLogging(logger),
		middleware.NewMetrics(registry),
		registry,
		db.Ping,
		logger,
	)

	httpServer := server.NewHTTPServer(fmt.Sprintf(":%s", cfg.HTTP.Port), r.Register(), logger)

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
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
