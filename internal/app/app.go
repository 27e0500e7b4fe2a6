package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/calier/phonerec/internal/catalog"
	"github.com/calier/phonerec/internal/config"
	"github.com/calier/phonerec/internal/handlers"
	"github.com/calier/phonerec/internal/middleware"
	"github.com/calier/phonerec/internal/ml"
	"github.com/calier/phonerec/internal/recommender"
	"github.com/calier/phonerec/internal/services"
	"github.com/calier/phonerec/internal/validation"
	"github.com/calier/phonerec/pkg/models"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	catalog  *catalog.Store
	scaler   *catalog.MinMaxScaler
	cache    *redis.Client
	metrics  *services.Metrics
	registry *prometheus.Registry
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Load the catalog once at startup; the store is immutable afterwards.
	rows, err := loadCatalog(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	app.catalog = catalog.NewStore(rows, app.logger)

	app.scaler = catalog.NewMinMaxScaler()
	if app.catalog.Len() > 0 {
		if err := app.scaler.Fit(catalog.DenseMatrix(catalog.Matrix(app.catalog.Rows()))); err != nil {
			return nil, fmt.Errorf("failed to fit feature scaler: %w", err)
		}
	}

	if cfg.Cache.Enabled {
		cache, err := setupCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		app.cache = cache
	}

	app.registry = prometheus.NewRegistry()
	if cfg.Monitoring.Enabled {
		app.metrics = services.NewMetrics(app.registry)
		app.metrics.CatalogSize.Set(float64(app.catalog.Len()))
	}

	var assets *services.AssetJobManager
	if cfg.Assets.Enabled && cfg.Assets.Command != "" {
		generator := services.NewCommandAssetGenerator(cfg.Assets.Command, app.logger)
		assets = services.NewAssetJobManager(generator, cfg.Assets.Dir, app.logger)
	}

	recSvc := services.NewRecommendationService(
		app.catalog,
		app.buildEngines(),
		app.cache,
		cfg.Cache.TTL,
		assets,
		app.metrics,
		cfg.Engine.DefaultTopN,
		cfg.Engine.ColdStartCount,
		app.logger,
	)
	healthSvc := services.NewHealthService(app.catalog, app.scaler)

	app.handlers = handlers.New(recSvc, healthSvc, app.logger)

	if err := app.setupRouter(); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *logrus.Logger {
	return a.logger
}

// Server builds the HTTP server for the configured port.
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:              ":" + a.config.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing cache connection")
			return err
		}
	}
	return nil
}

// buildEngines wires every engine the configuration supports. Hybrid is
// always available; the semantic and satisfaction engines require their
// external model commands.
func (a *App) buildEngines() map[string]recommender.Engine {
	engines := map[string]recommender.Engine{
		recommender.EngineHybrid: recommender.NewHybridEngine(a.catalog, a.scaler, a.logger),
	}

	if cmd := a.config.Engine.EncoderCommand; cmd != "" {
		bridge := ml.NewBridge(cmd, a.logger)
		engines[recommender.EngineSemantic] = recommender.NewSemanticEngine(bridge, a.logger)
	}
	if cmd := a.config.Engine.ScorerCommand; cmd != "" {
		bridge := ml.NewBridge(cmd, a.logger)
		engines[recommender.EngineSatisfaction] = recommender.NewSatisfactionEngine(a.scaler, bridge, a.logger)
	}
	return engines
}

func loadCatalog(cfg *config.Config, logger *logrus.Logger) ([]models.CatalogRow, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.ConnectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		return catalog.LoadPostgres(ctx, pool, logger)
	default:
		return catalog.LoadCSV(cfg.Catalog.Path, logger)
	}
}

func setupCache(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Cache.URL)
	if err != nil {
		return nil, err
	}
	opts.MaxRetries = cfg.Cache.MaxRetries
	opts.PoolSize = cfg.Cache.PoolSize
	return redis.NewClient(opts), nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() error {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint
	router.GET("/health", a.handlers.Health().Check)

	// Prometheus metrics endpoint
	if a.config.Monitoring.Enabled {
		path := a.config.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}

	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return fmt.Errorf("failed to compile request schemas: %w", err)
	}
	vm := middleware.NewValidationMiddleware(validator)

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/recommendations", vm.ValidateRecommendationRequest(), a.handlers.Recommendations().Recommend)
	}

	a.router = router
	return nil
}
