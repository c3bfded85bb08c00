package services

import (
	"github.com/fxledger/backend/internal/models"
	"go.uber.org/zap"
)

// AuditLogger writes one structured line per money movement. Nothing is
// stored; the transactions table remains the only record.
type AuditLogger struct {
	logger *zap.Logger
}

func NewAuditLogger(logger *zap.Logger) *AuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &AuditLogger{logger: logger.Named("audit")}
}

func (a *AuditLogger) LogTransaction(record *models.Transaction) {
	fields := []zap.Field{
		zap.String("transaction_id", record.ID),
		zap.String("event_type", string(record.Type)),
		zap.String("user_id", record.UserID),
		zap.String("amount", record.Amount.String()),
		zap.String("currency", record.Currency.String()),
		zap.String("status", "SUCCESS"),
	}
	if record.ReceiverID != nil {
		fields = append(fields, zap.String("receiver_id", *record.ReceiverID))
	}
	a.logger.Info("AUDIT", fields...)
}

func (a *AuditLogger) LogError(operation, accountID string, err error) {
	a.logger.Warn("AUDIT",
		zap.String("event_type", operation),
		zap.String("user_id", accountID),
		zap.String("status", "FAILED"),
		zap.String("kind", string(KindOf(err))),
		zap.Error(err),
	)
}
