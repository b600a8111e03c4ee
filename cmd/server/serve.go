package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"assay-backend/internal/auth"
	"assay-backend/internal/config"
	"assay-backend/internal/database"
	"assay-backend/internal/db"
	"assay-backend/internal/events"
	"assay-backend/internal/handlers"
	"assay-backend/internal/health"
	apihttp "assay-backend/internal/http"
	"assay-backend/internal/ledger"
	"assay-backend/internal/logging"
	"assay-backend/internal/middleware"
	"assay-backend/internal/models"
	"assay-backend/internal/repositories"
	"assay-backend/internal/services"
	"assay-backend/internal/storage"
	"assay-backend/migrations"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.WithField("database", cfg.Database.Name).Info("connected to database")

	applied, err := database.NewMigrator(pool, migrations.FS, ".", log).RunMigrations(ctx)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.WithField("applied", applied).Info("schema up to date")

	hub := events.NewHub(log)
	publisher := events.Multi{hub}
	if len(cfg.Events.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		defer kafka.Close()
		publisher = append(publisher, kafka)
		log.WithFields(logrus.Fields{
			"brokers": cfg.Events.KafkaBrokers,
			"topic":   cfg.Events.KafkaTopic,
		}).Info("publishing ledger events to kafka")
	}

	var media services.MediaStorage
	store, err := storage.NewS3MediaStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		media = store
		log.WithField("bucket", cfg.Media.Bucket).Info("photo media storage enabled")
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	creditRepo := repositories.NewCreditHistoryRepository(pool)
	certificateRepo := repositories.NewCertificateRepository(pool)
	goldTestRepo := repositories.NewGoldTestRepository(pool)
	weightLossRepo := repositories.NewWeightLossRepository(pool)
	globalRepo := repositories.NewGlobalSettingRepository(pool)

	// Services
	engine := ledger.NewEngine(creditRepo, publisher, log)
	customerService := services.NewCustomerService(customerRepo)
	creditService := services.NewCreditHistoryService(creditRepo, engine)
	certificateService := services.NewCertificateService(certificateRepo, customerRepo, media)
	goldTestService := services.NewGoldTestService(goldTestRepo, customerRepo)
	weightLossService := services.NewWeightLossService(weightLossRepo, customerRepo)
	globalService := services.NewGlobalSettingService(globalRepo)

	router := apihttp.NewRouter(apihttp.Handlers{
		Customer:          handlers.NewCustomerHandler(customerService, log),
		CreditHistory:     handlers.NewCreditHistoryHandler(creditService, log),
		GoldCertificate:   handlers.NewCertificateHandler(models.CertificateGold, certificateService, log),
		SilverCertificate: handlers.NewCertificateHandler(models.CertificateSilver, certificateService, log),
		PhotoCertificate:  handlers.NewCertificateHandler(models.CertificatePhoto, certificateService, log),
		GoldTest:          handlers.NewGoldTestHandler(goldTestService, log),
		WeightLoss:        handlers.NewWeightLossHandler(weightLossService, log),
		GlobalSetting:     handlers.NewGlobalSettingHandler(globalService, log),
		Health:            handlers.NewHealthHandler(health.NewHealthChecker(pool)),
		LedgerEvents:      hub.ServeWS,
	}, authMiddleware(cfg, log))

	handler := middleware.PanicRecovery(log)(
		middleware.RequestLogger(log)(
			middleware.NewCORS(cfg)(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server stopped with error")
		return err
	}
	log.Info("server stopped")
	return nil
}

func authMiddleware(cfg *config.Config, log logrus.FieldLogger) *middleware.AuthMiddleware {
	if !cfg.AuthEnabled() {
		log.Warn("jwt.secret not set, API is open")
		return nil
	}
	return middleware.NewAuthMiddleware(auth.NewJWTManager(cfg))
}
