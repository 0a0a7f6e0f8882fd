package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/esm"
	"github.com/app-sre/fabi/pkg/middleware"
	"github.com/app-sre/fabi/pkg/models"
	"github.com/app-sre/fabi/pkg/pdb"
	"github.com/app-sre/fabi/pkg/protein"
)

// Predict validates a sequence, folds it and returns the predicted
// structure with its computed properties. Sequences that fail
// validation never reach the fold API.
func Predict(cfg *fabi.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		var request models.PredictRequest

		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			jsonError(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		sequence := protein.Normalize(request.Sequence)

		if err := protein.Validate(sequence, cfg.FoldEnv.MaxSequenceLength); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		var warnings []string
		if len(sequence) > protein.WarnLength {
			warnings = append(warnings,
				fmt.Sprintf("Long sequences (>%d residues) may take several minutes to fold or time out", protein.WarnLength))
		}

		digest := protein.Digest(sequence)

		var (
			structure string
			cached    bool
		)

		if cfg.Cache != nil {
			structure, cached = cfg.Cache.Get(digest)
		}

		if !cached {
			structure, err = cfg.Fold.Predict(ctx, sequence)
			if err != nil {
				foldError(cfg, w, err)
				return
			}
		}

		summary, err := pdb.Summarize(structure)
		if err != nil {
			cfg.Logger.Errorf("Unable to summarize structure: %s", err)
			jsonError(w, "Fold API returned a malformed structure", http.StatusBadGateway)
			return
		}

		if cfg.Cache != nil && !cached {
			cfg.Cache.Set(digest, structure)
		}

		id, _ := ctx.Value(middleware.ContextKeyRequestID).(string)
		if id == "" {
			id = uuid.NewString()
		}

		response := &models.PredictResponse{
			ID:         id,
			Properties: protein.Calculate(sequence),
			Structure:  summary,
			PDB:        structure,
			Warnings:   warnings,
			Cached:     cached,
			Duration:   time.Since(start).Milliseconds(),
		}

		if cfg.History != nil && cfg.DBEnv.AllowWrite {
			record := &models.PredictionRecord{
				ID:        id,
				Digest:    digest,
				Sequence:  sequence,
				Length:    len(sequence),
				MeanPLDDT: summary.MeanPLDDT,
				CreatedAt: start.UTC(),
			}
			if err := cfg.History.Record(ctx, record, structure); err != nil {
				cfg.Logger.Errorf("Unable to record prediction: %s", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
}

// foldError translates fold API failures into responses. A timeout
// maps to 504, everything else to 502. The structure pane must never
// render stale output, so errors carry no body beyond the message.
func foldError(cfg *fabi.Config, w http.ResponseWriter, err error) {
	var upstream *esm.UpstreamError

	switch {
	case errors.As(err, &upstream):
		cfg.Logger.Errorf("Fold API error: %s", err)
		jsonError(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		cfg.Logger.Errorf("Fold API timeout: %s", err)
		jsonError(w, "Fold API did not respond in time", http.StatusGatewayTimeout)
	default:
		cfg.Logger.Errorf("Unable to fold sequence: %s", err)
		jsonError(w, "Unable to reach fold API", http.StatusBadGateway)
	}
}
