package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/config"
	pdfrender "github.com/alerthe/alerthe-server/internal/render/pdf"
	"github.com/alerthe/alerthe-server/internal/repository/mongodb"
	"github.com/alerthe/alerthe-server/internal/scheduler"
	"github.com/alerthe/alerthe-server/internal/server/handlers"
	"github.com/alerthe/alerthe-server/internal/server/router"
	incidentsvc "github.com/alerthe/alerthe-server/internal/service/incidents"
	reportingsvc "github.com/alerthe/alerthe-server/internal/service/reporting"
	"github.com/alerthe/alerthe-server/pkg/clients/gemini"
	"github.com/alerthe/alerthe-server/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Initialize AI client; without a key reports carry the placeholder.
	var narrativeClient reportingsvc.NarrativeClient
	if cfg.AI.GeminiKey != "" {
		narrativeClient = gemini.NewClient(cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		baseLogger.Info("gemini narrative client enabled", zap.String("model", cfg.AI.GeminiModel))
	} else {
		baseLogger.Warn("gemini api key missing, report narratives disabled")
	}

	reportLoc := cfg.ReportLocation()
	renderer := pdfrender.NewRenderer(cfg.Reporting.LogoPath)

	reportingSvc := reportingsvc.NewService(mongoRepo, narrativeClient, renderer, reportLoc, baseLogger.Named("svc.reporting"))
	incidentSvc := incidentsvc.NewService(mongoRepo, baseLogger.Named("svc.incidents"))

	incidentHandler := handlers.NewIncidentHandler(incidentSvc, baseLogger.Named("handlers.incidents"))
	reportHandler := handlers.NewReportHandler(reportingSvc, reportLoc, baseLogger.Named("handlers.reports"))
	engine := router.New(incidentHandler, reportHandler, baseLogger.Named("router"))

	// Initialize scheduler for the automatic monthly export.
	sched := scheduler.NewScheduler(cfg.Reporting, reportLoc, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
