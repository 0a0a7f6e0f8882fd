package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/audit"
	"github.com/app-sre/fabi/pkg/cache"
	cacheEnv "github.com/app-sre/fabi/pkg/env/cache"
	"github.com/app-sre/fabi/pkg/env/db"
	"github.com/app-sre/fabi/pkg/env/fold"
	"github.com/app-sre/fabi/pkg/env/splunk"
	"github.com/app-sre/fabi/pkg/esm"
	"github.com/app-sre/fabi/pkg/handlers"
	"github.com/app-sre/fabi/pkg/middleware"
	"github.com/app-sre/fabi/pkg/storage"
	"github.com/app-sre/fabi/pkg/version"
	"github.com/app-sre/fabi/pkg/web"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute

	schemaTimeout = 30 * time.Second
)

func Run(logger *zap.SugaredLogger) error {
	production := fabi.Production()
	logger.Infof("Starting FABI version: %s", version.Version())
	logger.Infof("Production: %t", production)

	fe := fold.NewFoldEnv()
	err := fe.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure fold API: %w", err)
	}
	logger.Infof("Using fold API endpoint: %s (timeout: %s)", fe.Endpoint, fe.Timeout)

	cfg := &fabi.Config{
		FoldEnv:     fe,
		Fold:        esm.NewClient(fe),
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}

	ce := cacheEnv.NewCacheEnv()
	err = ce.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure cache: %w", err)
	}

	if ce.Enabled() {
		cfg.Cache = cache.New(ce.TTL, ce.MaxEntries)
		defer cfg.Cache.Stop()
		logger.Infof("Caching predictions for: %s (max entries: %d)", ce.TTL, ce.MaxEntries)
	} else {
		logger.Info("Prediction cache disabled")
	}

	if os.Getenv("DB_DRIVER") != "" {
		dbe := db.NewDBEnv()
		err = dbe.Populate()
		if err != nil {
			return fmt.Errorf("unable to configure database: %w", err)
		}
		logger.Infof("Using database driver: %s (write access: %t)", dbe.Driver, dbe.AllowWrite)

		sqlDB, err := sql.Open(dbe.Driver.Name(), dbe.ConnectionDSN())
		if err != nil {
			return fmt.Errorf("unable to open database connection: %w", err)
		}
		defer sqlDB.Close()
		logger.Debugf("Connected to database host: %s (port: %d)", dbe.Host, dbe.Port)

		history := storage.NewHistory(sqlDB, dbe.Driver)

		if dbe.AllowWrite {
			ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
			defer cancel()

			if err := history.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("unable to prepare database: %w", err)
			}
		}

		cfg.DB = sqlDB
		cfg.DBEnv = dbe
		cfg.History = history
	} else {
		logger.Info("Prediction history disabled")
	}

	if os.Getenv("SPLUNK_ENDPOINT") != "" {
		se := splunk.NewSplunkEnv()
		err = se.Populate()
		if err != nil {
			return fmt.Errorf("unable to configure Splunk: %w", err)
		}
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)

		cfg.SplunkAudit = audit.NewSplunkAudit(se)
	}

	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	base := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.RequestID()),
	)

	predictChain := base.Append(
		alice.Constructor(middleware.Timeout(fabi.RequestTimeout())),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Predict(cfg))

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/", logHandler(defaultLogOutput, base.Then(handlers.Index(cfg)))).Methods("GET")
	r.PathPrefix("/static/").Handler(logHandler(healthLogOutput, http.FileServer(http.FS(web.Static)))).Methods("GET")

	r.Handle("/api/v1/predict", logHandler(defaultLogOutput, predictChain)).Methods("POST")
	r.Handle("/api/v1/examples", logHandler(defaultLogOutput, base.Then(handlers.Examples(cfg)))).Methods("GET")

	if cfg.History != nil {
		r.Handle("/api/v1/predictions", logHandler(defaultLogOutput, base.Then(handlers.History(cfg)))).Methods("GET")
		r.Handle("/api/v1/predictions/{id}", logHandler(defaultLogOutput, base.Then(handlers.Prediction(cfg)))).Methods("GET")
		r.Handle("/api/v1/predictions/{id}/pdb", logHandler(defaultLogOutput, base.Then(handlers.PredictionPDB(cfg)))).Methods("GET")
	}

	port := 8080
	logger.Infof("HTTP server starting on port: %d", port)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           r,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}
