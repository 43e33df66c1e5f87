package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/morleaf/leaf_chain/internal/config"
	"github.com/morleaf/leaf_chain/internal/db"
	"github.com/morleaf/leaf_chain/internal/events"
	"github.com/morleaf/leaf_chain/internal/httpserver"
	"github.com/morleaf/leaf_chain/internal/logging"
	authmw "github.com/morleaf/leaf_chain/internal/middleware/auth"
	loggingmw "github.com/morleaf/leaf_chain/internal/middleware/logging"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/search"
	"github.com/morleaf/leaf_chain/internal/service"
	"github.com/morleaf/leaf_chain/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New("leaf_chain", cfg.LogLevel)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	index := &search.ExpeditionIndex{}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, expedition search disabled", "error", err)
		} else {
			index.ES = esClient
		}
	}

	gormRepo := &repo.GormRepo{DB: gdb}
	codec := tokens.NewCodec(cfg.JWTSecret)

	authSvc := &service.AuthService{
		Repo:       gormRepo,
		Codec:      codec,
		AccessTTL:  time.Duration(cfg.AccessTTLHours) * time.Hour,
		RefreshTTL: time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
	}

	httpserver.Register(e, &httpserver.Deps{
		Auth:        &httpserver.AuthHTTP{Svc: authSvc},
		Centra:      &httpserver.CentraHTTP{Svc: &service.RecordService{Repo: gormRepo}, Producer: producer},
		GuardHarbor: &httpserver.GuardHarborHTTP{Svc: &service.CheckpointService{Repo: gormRepo}, Producer: producer},
		Logistics:   &httpserver.LogisticsHTTP{Svc: &service.LogisticsService{Repo: gormRepo, Index: index}, Producer: producer},
		Gate:        authmw.NewRoleGate(gormRepo, codec),
	})

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
