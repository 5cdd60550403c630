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
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"parolaccia/internal/api"
	"parolaccia/internal/archive"
	"parolaccia/internal/models"
	"parolaccia/internal/monitoring"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

// Config represents the application configuration
type Config struct {
	MenuPath string `yaml:"menu_path"`
	Archive  struct {
		Dialect string `yaml:"dialect"`
		DSN     string `yaml:"dsn"`
	} `yaml:"archive"`
	LogLevel string `yaml:"log_level"`
	Metrics  struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

func main() {
	flag.Parse()

	// .env is optional; real config comes from the yaml file
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config, err := loadConfig(*configFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	menu, err := models.LoadMenu(config.MenuPath)
	if err != nil {
		logger.Fatal("failed to load menu", zap.Error(err))
	}
	logger.Info("menu loaded",
		zap.String("currency", menu.Currency),
		zap.Int("categories", len(menu.Categories)))

	orders, err := archive.Open(config.Archive.Dialect, config.Archive.DSN)
	if err != nil {
		logger.Fatal("failed to open order archive", zap.Error(err))
	}
	defer orders.Close()

	metrics := monitoring.NewMetrics()
	server := api.NewServer(menu, orders, metrics, logger)

	if config.Metrics.Enabled {
		go startMetricsServer(config.Metrics.Port, metrics, logger)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.Int("port", *port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig(path string) (*Config, error) {
	config := &Config{}
	config.MenuPath = "data/menu.json"
	config.Archive.Dialect = "sqlite3"
	config.Archive.DSN = "orders.db"
	config.Metrics.Enabled = true
	config.Metrics.Port = *metricsPort

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func startMetricsServer(port int, metrics *monitoring.Metrics, logger *zap.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	logger.Info("starting metrics server", zap.Int("port", port))
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("metrics server error", zap.Error(err))
	}
}
