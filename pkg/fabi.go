package fabi

import (
	"database/sql"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/fabi/pkg/audit"
	"github.com/app-sre/fabi/pkg/cache"
	"github.com/app-sre/fabi/pkg/env"
	"github.com/app-sre/fabi/pkg/env/db"
	"github.com/app-sre/fabi/pkg/env/fold"
	"github.com/app-sre/fabi/pkg/esm"
	"github.com/app-sre/fabi/pkg/storage"
)

const defaultRequestTimeout = 2 * time.Minute

// Config carries the shared service state. The database, cache,
// history and Splunk audit are optional and stay nil unless their
// environment is configured.
type Config struct {
	DB          *sql.DB
	DBEnv       *db.DBEnv
	FoldEnv     *fold.FoldEnv
	Fold        *esm.Client
	Cache       *cache.Cache
	History     *storage.History
	LoggerAudit *audit.LoggerAudit
	SplunkAudit *audit.SplunkAudit
	Logger      *zap.SugaredLogger
}

// Production reports whether the service runs in production, as set
// with the ENVIRONMENT environment variable.
func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// RequestTimeout returns the server-side request timeout, as set with
// the REQUEST_TIMEOUT environment variable.
func RequestTimeout() time.Duration {
	timeout := defaultRequestTimeout

	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		duration, err := env.Duration(s)
		if err == nil {
			timeout = duration
		}
	}

	return timeout
}
