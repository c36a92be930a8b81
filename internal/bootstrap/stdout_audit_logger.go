package bootstrap

import (
	"context"
	"time"

	"go-leavehub/internal/shared/contextutil"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

// Log writes the entry through the request-scoped logger when the context
// carries one, enriched with whatever tracing identity the context holds.
func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("audit")

	meta := contextutil.ExtractMetadata(ctx)
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	if meta.RequestID != "" {
		fields = append(fields, zap.String("request_id", meta.RequestID))
	}
	if meta.UserID > 0 {
		fields = append(fields, zap.Int("user_id", meta.UserID))
	}

	log.Info("audit event", fields...)
}
