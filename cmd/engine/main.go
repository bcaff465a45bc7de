package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"jobinfo-engine/internal/catalog"
	"jobinfo-engine/internal/config"
	"jobinfo-engine/internal/events"
	"jobinfo-engine/internal/httpapi"
	"jobinfo-engine/internal/session"
	"jobinfo-engine/internal/store"
)

const defaultPort = 38471

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Engine data dir: use env if provided (the desktop shell can pass
	// one), else local folder.
	dataDir := os.Getenv("JOBINFO_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal("create data dir", zap.String("dir", dataDir), zap.Error(err))
	}

	// One engine per data dir. A second instance would fight over the
	// sqlite file and the config.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatal("acquire instance lock", zap.Error(err))
	}
	if !locked {
		log.Fatal("another engine instance is already running", zap.String("dir", dataDir))
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatal("config bootstrap failed", zap.Error(err))
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatal("config load failed", zap.String("path", userCfgPath), zap.Error(err))
	}
	cfgVal.Store(cfg)

	cat, err := catalog.Load(catalog.Paths{
		Jobs:     cfg.Catalog.Jobs,
		Sectors:  cfg.Catalog.Sectors,
		Salaries: cfg.Catalog.Salaries,
		Terms:    cfg.Catalog.Terms,
	})
	if err != nil {
		log.Fatal("catalog load failed", zap.Error(err))
	}
	log.Info("catalog loaded",
		zap.Int("jobs", len(cat.Jobs())),
		zap.Int("sectors", len(cat.Sectors())),
		zap.Int("terms", len(cat.Terms())),
	)

	dbPath := filepath.Join(dataDir, "jobinfo.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal("open db", zap.String("path", dbPath), zap.Error(err))
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal("migrate db", zap.Error(err))
	}

	sess := session.New(cat, db.Pool, session.Settings{
		BaseCurrency:      cfg.Currency.Base,
		SecondaryCurrency: cfg.Currency.Secondary,
		DefaultRate:       cfg.Currency.DefaultRate,
		DefaultAllowances: cfg.DefaultAllowances(),
		Rates:             cfg.Rates(),
	})
	if err := sess.Restore(context.Background()); err != nil {
		// Non-fatal: the engine starts with a fresh session.
		log.Warn("restore session state", zap.Error(err))
	}

	hub := events.NewHub()

	mux := httpapi.NewMux(httpapi.Deps{
		Cat:         cat,
		Sess:        sess,
		Hub:         hub,
		Log:         log,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	var limiter *httpapi.ClientLimiter
	if cfg.API.RequestsPerSecond > 0 {
		burst := cfg.API.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = httpapi.NewClientLimiter(cfg.API.RequestsPerSecond, burst)
	}

	port := cfg.App.Port
	if port == 0 {
		port = defaultPort
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("listen", zap.String("addr", addr), zap.Error(err))
	}

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal("generate shutdown token", zap.Error(err))
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog(log),
		httpapi.Recover(log),
		httpapi.Cors,
		httpapi.RateLimit(limiter),
	)

	log.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("db", dbPath),
		zap.String("config", userCfgPath),
		zap.String("shutdown_token", token),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}
	log.Info("engine stopped")
}
