package handlers

import (
	"encoding/json"
	"net/http"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/protein"
)

// Examples returns the bundled example sequences the dashboard offers
// as one-click inputs.
func Examples(cfg *fabi.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		examples, err := protein.Examples()
		if err != nil {
			cfg.Logger.Errorf("Unable to load example library: %s", err)
			jsonError(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(examples)
	})
}
