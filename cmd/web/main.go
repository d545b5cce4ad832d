package main

import (
	"database/sql"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
	"github.com/thanushri8950/BookHivewebapp/internal/jsonlog"
)

type config struct {
	addr string
	env  string
	db   struct {
		driver string
		dsn    string
	}
	sessionLifetime time.Duration
}

type application struct {
	config        config
	logger        *jsonlog.Logger
	models        data.Models
	session       *scs.SessionManager
	templateCache map[string]*template.Template
}

func main() {
	// A .env file can supply the defaults; flags always win.
	_ = godotenv.Load()

	var cfg config
	flag.StringVar(&cfg.addr, "addr", getenv("BOOKHIVE_ADDR", ":4000"), "HTTP network address")
	flag.StringVar(&cfg.env, "env", getenv("BOOKHIVE_ENV", "development"), "Environment (development|production)")
	flag.StringVar(&cfg.db.driver, "db-driver", getenv("BOOKHIVE_DB_DRIVER", "sqlite3"), "Database driver (postgres|sqlite3)")
	flag.StringVar(&cfg.db.dsn, "db-dsn", getenv("BOOKHIVE_DB_DSN", "bookhive.db"), "Database DSN")
	flag.DurationVar(&cfg.sessionLifetime, "session-lifetime", 12*time.Hour, "Session lifetime")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err)
	}
	defer db.Close()

	err = data.Migrate(db, cfg.db.driver)
	if err != nil {
		logger.PrintFatal(err)
	}
	err = data.Seed(db)
	if err != nil {
		logger.PrintFatal(err)
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.PrintFatal(err)
	}

	session := scs.New()
	session.Lifetime = cfg.sessionLifetime
	session.Cookie.HttpOnly = true
	session.Cookie.Secure = cfg.env == "production"
	switch cfg.db.driver {
	case "postgres":
		session.Store = postgresstore.New(db)
	case "sqlite3":
		session.Store = sqlite3store.New(db)
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		models:        data.NewModels(db),
		session:       session,
		templateCache: templateCache,
	}

	srv := &http.Server{
		Addr:         cfg.addr,
		Handler:      app.routes(),
		ErrorLog:     log.New(logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.PrintInfo(fmt.Sprintf("starting %s server on %s", cfg.env, cfg.addr))
	err = srv.ListenAndServe()
	logger.PrintFatal(err)
}

func openDB(cfg config) (*sql.DB, error) {
	switch cfg.db.driver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.db.driver)
	}

	db, err := sql.Open(cfg.db.driver, cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
