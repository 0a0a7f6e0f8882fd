package audit

import (
	"go.uber.org/zap"
)

type LoggerAudit struct {
	Logger *zap.SugaredLogger
}

var _ Audit = (*LoggerAudit)(nil)

func NewLoggerAudit(logger *zap.SugaredLogger) *LoggerAudit {
	return &LoggerAudit{Logger: logger}
}

func (d *LoggerAudit) Write(f *FoldData) error {
	d.Logger.Infow("AUDIT",
		"RequestID", f.RequestID,
		"Digest", f.Digest,
		"Length", f.Length,
		"Timestamp", f.Timestamp,
	)
	return nil
}
