package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms/openai"

	"maitred/internal/api"
	"maitred/internal/config"
	"maitred/internal/dialogue"
	"maitred/internal/menu"
	"maitred/internal/monitoring"
	"maitred/internal/phrasing"
	"maitred/internal/session"
	"maitred/internal/storage"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	catalog, err := loadCatalog(cfg, storage.NewMenuRepository(db), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load menu catalog")
	}
	logger.Info().Int("items", catalog.Len()).Msg("menu loaded")

	model, err := openai.New(
		openai.WithModel(cfg.LLM.Model),
		openai.WithToken(cfg.LLM.APIKey),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize language model")
	}
	phraser := phrasing.New(model, cfg.LLM.MaxTokens, cfg.LLM.Temperature)

	sessions := session.NewStore()
	metrics := monitoring.New(prometheus.DefaultRegisterer, func() float64 {
		return float64(sessions.Len())
	})

	orders := storage.NewOrderRepository(db)
	engine := dialogue.NewEngine(catalog, sessions, orders, phraser, metrics,
		logger.With().Str("component", "dialogue").Logger())

	server := api.NewServer(engine, storage.NewUserRepository(db), orders,
		cfg.Auth.JWTSecret, logger.With().Str("component", "api").Logger())

	go startMetricsServer(cfg.Server.MetricsPort, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("shutting down servers")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("API server shutdown error")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("starting API server")
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("API server error")
	}
}

// loadCatalog reads the menu from the database, seeding it from the
// configured YAML file when the table is empty.
func loadCatalog(cfg *config.Config, repo storage.MenuRepository, logger zerolog.Logger) (*menu.Catalog, error) {
	count, err := repo.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 && cfg.Menu.SeedFile != "" {
		items, err := storage.LoadMenuFile(cfg.Menu.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := repo.ReplaceAll(items); err != nil {
			return nil, err
		}
		logger.Info().Str("file", cfg.Menu.SeedFile).Int("items", len(items)).Msg("seeded menu")
	}

	items, err := repo.ListItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu catalog is empty and no seed file configured")
	}
	return menu.New(items), nil
}

func startMetricsServer(port int, logger zerolog.Logger) {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	logger.Info().Int("port", port).Msg("starting metrics server")
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
