package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/envstruct"
	"github.com/tkoskela/fitplan/internal/logging"
	"github.com/tkoskela/fitplan/internal/personalization"
	"github.com/tkoskela/fitplan/internal/progress"
	"github.com/tkoskela/fitplan/internal/sqlite"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	db              *sqlite.Database
	catalog         *catalog.Catalog
	personalization *personalization.Service
	progress        *progress.Service
	now             func() time.Time
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITPLAN_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITPLAN_SQLITE_URL" envDefault:"./fitplan.sqlite3"`
	// CatalogPath optionally overrides the embedded content catalog with a TOML file.
	CatalogPath string `env:"FITPLAN_CATALOG_PATH" envDefault:""`
	// CORSOrigin is the allowed browser origin for cross-origin API calls.
	CORSOrigin string `env:"FITPLAN_CORS_ORIGIN" envDefault:""`
	// SecureCookies toggles the Secure flag on session cookies. Disable for plain HTTP development.
	SecureCookies bool `env:"FITPLAN_SECURE_COOKIES" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return fmt.Errorf("populate config: %w", err)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return fmt.Errorf("open db %s: %w", cfg.SqliteURL, err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	c, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "loaded content catalog",
		slog.Int("workouts", len(c.Workouts())),
		slog.Int("meals", len(c.Meals())))

	sessionManager := initializeSessionManager(db, cfg.SecureCookies)

	app := application{
		logger:          logger,
		sessionManager:  sessionManager,
		db:              db,
		catalog:         c,
		personalization: personalization.NewService(db, logger),
		progress:        progress.NewService(db, logger),
		now:             time.Now,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes(cfg.CORSOrigin)); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// loadCatalog reads the content catalog, preferring an override file when
// configured.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		c, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog file %s: %w", path, err)
		}
		return c, nil
	}
	c, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load embedded catalog: %w", err)
	}
	return c, nil
}

func initializeSessionManager(dbs *sqlite.Database, secure bool) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 30 * 24 * time.Hour                                           //nolint:mnd // a month
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = secure
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	// Missing .env is fine, the environment may be configured externally.
	_ = godotenv.Load()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", slog.Any("error", err))
		os.Exit(1)
	}
}
