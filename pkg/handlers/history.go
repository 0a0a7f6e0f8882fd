package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/storage"
)

// History lists recently stored predictions, newest first.
func History(cfg *fabi.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := storage.RecentLimit

		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				jsonError(w, "Invalid limit parameter", http.StatusBadRequest)
				return
			}
			limit = n
		}

		records, err := cfg.History.Recent(r.Context(), limit)
		if err != nil {
			cfg.Logger.Errorf("Unable to list predictions: %s", err)
			jsonError(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	})
}

// Prediction returns a single stored prediction, without its
// structure.
func Prediction(cfg *fabi.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		record, err := cfg.History.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				jsonError(w, "Prediction not found", http.StatusNotFound)
				return
			}

			cfg.Logger.Errorf("Unable to select prediction: %s", err)
			jsonError(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(record)
	})
}

// PredictionPDB serves the stored structure of a prediction as a PDB
// download.
func PredictionPDB(cfg *fabi.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		structure, err := cfg.History.PDB(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				jsonError(w, "Prediction not found", http.StatusNotFound)
				return
			}

			cfg.Logger.Errorf("Unable to select prediction structure: %s", err)
			jsonError(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "chemical/x-pdb")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "prediction-"+id+".pdb"))
		_, _ = w.Write([]byte(structure))
	})
}
