package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/config"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/database"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/handler"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/service"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/templates"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	service.ReportTemplate = templates.Report

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool) {
	rulesetRepo := repository.NewRuleSetRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	currencyRepo := repository.NewCurrencyRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	formRepo := repository.NewFormRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	quoteService := service.NewQuoteService(rulesetRepo, categoryRepo)
	saleService := service.NewSaleService(saleRepo, rulesetRepo, categoryRepo)
	refundService := service.NewRefundService(formRepo, currencyRepo)
	reportService := service.NewReportService(statsRepo)

	quoteHandler := handler.NewQuoteHandler(quoteService)
	saleHandler := handler.NewSaleHandler(saleService)
	formHandler := handler.NewFormHandler(formRepo, refundService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	rulesetHandler := handler.NewRuleSetHandler(rulesetRepo)
	reportHandler := handler.NewReportHandler(reportService)

	api := router.Group("/api/v1")
	{
		api.GET("/categories", categoryHandler.List)
		api.GET("/rulesets/active", rulesetHandler.GetActive)
		api.POST("/quotes", quoteHandler.Quote)
		api.POST("/sales", saleHandler.Create)
		api.GET("/forms", formHandler.List)
		api.GET("/forms/:id", formHandler.Get)
		api.GET("/forms/:id/payout", formHandler.Payout)
		api.GET("/reports/activity", reportHandler.GetReport)
	}
}
