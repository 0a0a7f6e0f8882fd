package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	fabi "github.com/app-sre/fabi/pkg"
)

// Healthcheck reports whether the fold API, and the database when one
// is configured, are reachable.
func Healthcheck(cfg *fabi.Config) http.Handler {
	options := []healthcheck.Option{
		healthcheck.WithTimeout(5 * time.Second),
		healthcheck.WithChecker(
			"fold-api", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Fold.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Healthcheck unable to reach the fold API: %s", err)
						return errors.New("Unable to reach the fold API")
					}
					return nil
				},
			),
		),
	}

	if cfg.DB != nil {
		options = append(options, healthcheck.WithChecker(
			"database", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.DB.PingContext(ctx); err != nil {
						cfg.Logger.Errorf("Healthcheck unable to connect to the database: %s", err)
						return errors.New("Unable to connect to the database")
					}
					return nil
				},
			),
		))
	}

	return healthcheck.Handler(options...)
}
