package handlers

import (
	"html/template"
	"net/http"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/version"
	"github.com/app-sre/fabi/pkg/web"
)

// Index renders the dashboard page.
func Index(cfg *fabi.Config) http.Handler {
	tmpl := template.Must(template.ParseFS(web.Templates, "templates/index.html.tmpl"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			Version           string
			MaxSequenceLength int
			HistoryEnabled    bool
		}{
			Version:           version.Version(),
			MaxSequenceLength: cfg.FoldEnv.MaxSequenceLength,
			HistoryEnabled:    cfg.History != nil,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			cfg.Logger.Errorf("Unable to render dashboard: %s", err)
		}
	})
}
