package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/logger"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(log *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: log}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountRegistered logs account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	payload := map[string]any{
		"account_id":    event.AccountID,
		"user_name":     event.UserName,
		"email":         logger.MaskEmail(event.Email),
		"status":        event.Status,
		"registered_at": event.RegisteredAt,
		"metadata":      event.Metadata,
	}
	p.logEvent("account.registered", event.AccountID, event.RegisteredAt, payload)
	return nil
}

// PublishPasswordChanged logs account.password.changed events.
func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"changed_at": event.ChangedAt,
		"changed_by": event.ChangedBy,
		"source":     event.Source,
		"metadata":   event.Metadata,
	}
	p.logEvent("account.password.changed", event.AccountID, event.ChangedAt, payload)
	return nil
}

// PublishPasswordResetRequested logs account.password.reset_requested events.
func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := map[string]any{
		"account_id":         event.AccountID,
		"requested_at":       event.RequestedAt,
		"masked_destination": event.MaskedDestination,
		"expires_at":         event.ExpiresAt,
		"metadata":           event.Metadata,
	}
	p.logEvent("account.password.reset_requested", event.AccountID, event.RequestedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
