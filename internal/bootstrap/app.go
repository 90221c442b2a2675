package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/hr_dashboard/internal/config"
	"github.com/locvowork/hr_dashboard/internal/database"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/handler"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/internal/repository"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
	"github.com/locvowork/hr_dashboard/internal/view"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Echo      *echo.Echo
	DB        *sql.DB
	Datastore *database.DatastoreClient
	Search    *database.ElasticSearchClient
	Sessions  *handler.Sessions
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// Setup loads the environment configuration and initializes logging.
func Setup(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	logger.InitLogging(logger.Options{
		FilePath: config.DefaultEnvConfig.LOG_FILE_PATH,
		Level:    config.DefaultEnvConfig.LOG_LEVEL,
		Format:   config.DefaultEnvConfig.LOG_FORMAT,
	})
	logger.InfoLog(ctx, "Environment variables loaded successfully")
	return nil
}

// NewRosterClient builds the roster API client from configuration.
func NewRosterClient() *repository.RosterClient {
	return repository.NewRosterClient(config.DefaultEnvConfig.ROSTER_BASE_URL, nil)
}

// NewSearchClient builds the Elasticsearch client, or returns nil when ELASTIC_URL is unset.
func NewSearchClient() (*database.ElasticSearchClient, error) {
	if config.DefaultEnvConfig.ELASTIC_URL == "" {
		return nil, nil
	}
	return database.NewElasticSearchClient(config.DefaultEnvConfig.ELASTIC_URL, config.DefaultEnvConfig.ELASTIC_INDEX)
}

func (a *App) Initialize(ctx context.Context) error {
	if err := Setup(ctx); err != nil {
		return err
	}
	cfg := config.DefaultEnvConfig

	slot, err := a.newBookmarkSlot(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize bookmark storage: %w", err)
	}
	logger.InfoLog(ctx, "Bookmark storage: %s (slot %q)", cfg.BOOKMARK_BACKEND, slot.Name())

	search, err := NewSearchClient()
	if err != nil {
		return fmt.Errorf("failed to initialize search: %w", err)
	}
	var index domain.EmployeeIndex
	if search != nil {
		a.Search = search
		index = search
		logger.InfoLog(ctx, "Search enabled on index %q", cfg.ELASTIC_INDEX)
	}

	// Initialize dependencies
	roster := NewRosterClient()
	notifier := service.NewNotifier()
	bookmarks := service.NewBookmarkStore(slot, notifier)
	analytics := service.NewAnalyticsService(roster, bookmarks, cfg.ANALYTICS_FETCH_LIMIT)
	reports := service.NewReportService(bookmarks, analytics)

	a.Sessions = handler.NewSessions(view.Deps{
		Roster:     service.NewRosterService(roster, service.NewRandomRater(0)),
		Bookmarks:  bookmarks,
		Notifier:   notifier,
		Profiles:   service.NewProfileGenerator(0),
		PageSize:   cfg.PAGE_SIZE,
		FetchLimit: cfg.ROSTER_FETCH_LIMIT,
	})

	handlers := &handler.Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthenticator(cfg.AUTH_EMAIL, cfg.AUTH_PASSWORD, cfg.AUTH_LATENCY), a.Sessions),
		Dashboard: handler.NewDashboardHandler(),
		Bookmarks: handler.NewBookmarkHandler(bookmarks, notifier, reports),
		Analytics: handler.NewAnalyticsHandler(analytics, reports),
		Search:    handler.NewSearchHandler(index),
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(handlers)

	return nil
}

// newBookmarkSlot opens the durable slot selected by BOOKMARK_BACKEND.
func (a *App) newBookmarkSlot(ctx context.Context) (domain.Slot, error) {
	cfg := config.DefaultEnvConfig
	switch cfg.BOOKMARK_BACKEND {
	case config.BookmarkBackendFile:
		return repository.NewFileSlot(cfg.BOOKMARK_SLOT, cfg.BOOKMARK_FILE_PATH), nil

	case config.BookmarkBackendMemory:
		return repository.NewMemorySlot(cfg.BOOKMARK_SLOT), nil

	case config.BookmarkBackendPostgres:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return nil, err
		}
		a.DB = db
		slot := repository.NewPostgresSlot(db, cfg.BOOKMARK_SLOT)
		if err := slot.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return slot, nil

	case config.BookmarkBackendDatastore:
		if cfg.DATASTORE_PROJECT_ID == "" {
			return nil, errors.New("DATASTORE_PROJECT_ID is required for the datastore backend")
		}
		client, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID)
		if err != nil {
			return nil, err
		}
		a.Datastore = client
		return repository.NewDatastoreSlot(client, cfg.BOOKMARK_SLOT), nil

	default:
		return nil, fmt.Errorf("unknown BOOKMARK_BACKEND %q", cfg.BOOKMARK_BACKEND)
	}
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Validator = handler.NewRequestValidator()
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(logger.RequestLogger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(handlers *handler.Handlers) {
	a.Echo.GET("/healthz", func(c echo.Context) error {
		return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
	})
	if config.DefaultEnvConfig.METRICS_ENABLED {
		a.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
	handlers.Register(a.Echo, a.Sessions)
}

// Run serves until ctx is cancelled or the server fails, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	// Request contexts derive from base so that open event streams end on shutdown.
	base, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	a.Echo.Server.BaseContext = func(net.Listener) context.Context { return base }

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.InfoLog(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	cancelBase()
	if a.Sessions != nil {
		a.Sessions.CloseAll()
	}
	return a.Echo.Shutdown(shutdownCtx)
}

// Close releases the storage clients.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Datastore != nil {
		a.Datastore.Close()
	}
}
