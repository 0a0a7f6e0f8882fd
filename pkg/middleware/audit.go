package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/audit"
	"github.com/app-sre/fabi/pkg/models"
	"github.com/app-sre/fabi/pkg/protein"
)

// Audit records every fold request before it reaches the handler. The
// request body is restored for the handler to consume. Requests whose
// body does not decode pass through, the handler rejects them with a
// proper error.
func Audit(cfg *fabi.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var (
				b       bytes.Buffer
				request models.PredictRequest
			)

			if s := r.Header.Get(contentLengthHeader); s == "" {
				l := fmt.Sprintf("Request without required header: %s", contentLengthHeader)
				http.Error(w, l, http.StatusBadRequest)
				return
			}

			if _, err := io.Copy(&b, r.Body); err != nil {
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			err := json.Unmarshal(b.Bytes(), &request)
			if err != nil {
				cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			id, _ := ctx.Value(ContextKeyRequestID).(string)
			sequence := protein.Normalize(request.Sequence)

			fold := &audit.FoldData{
				RequestID: id,
				Digest:    protein.Digest(sequence),
				Length:    len(sequence),
				Timestamp: now.Unix(),
			}
			_ = cfg.LoggerAudit.Write(fold)

			if cfg.SplunkAudit != nil {
				if err := cfg.SplunkAudit.Write(fold); err != nil {
					cfg.Logger.Errorf("Unable to send audit to Splunk: %s", err)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
					return
				}
			}
			h.ServeHTTP(w, r)
		})
	}
}
