package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/config"
	"github.com/articlepost/account-service/internal/infra/logger"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, log *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: log}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	AccountID string           `json:"account_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, accountID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}
	if requestID, ok := ctx.Value(logger.RequestIDKey{}).(string); ok && requestID != "" {
		metadata["request_id"] = requestID
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		AccountID: accountID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Key:   sarama.StringEncoder(accountID),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishAccountRegistered publishes account.registered events.
func (p *EventPublisher) PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error {
	payload := struct {
		AccountID    string         `json:"account_id"`
		UserName     string         `json:"user_name"`
		Email        string         `json:"email"`
		Status       string         `json:"status"`
		RegisteredAt time.Time      `json:"registered_at"`
		Metadata     map[string]any `json:"metadata,omitempty"`
	}{
		AccountID:    event.AccountID,
		UserName:     event.UserName,
		Email:        logger.MaskEmail(event.Email),
		Status:       event.Status,
		RegisteredAt: event.RegisteredAt.UTC(),
		Metadata:     event.Metadata,
	}

	return p.publish(ctx, event.EventID, "account.registered", event.AccountID, event.RegisteredAt, payload)
}

// PublishPasswordChanged publishes account.password.changed events.
func (p *EventPublisher) PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error {
	payload := struct {
		AccountID string         `json:"account_id"`
		ChangedAt time.Time      `json:"changed_at"`
		ChangedBy string         `json:"changed_by"`
		Source    string         `json:"source"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}{
		AccountID: event.AccountID,
		ChangedAt: event.ChangedAt.UTC(),
		ChangedBy: event.ChangedBy,
		Source:    event.Source,
		Metadata:  event.Metadata,
	}

	return p.publish(ctx, event.EventID, "account.password.changed", event.AccountID, event.ChangedAt, payload)
}

// PublishPasswordResetRequested publishes account.password.reset_requested
// events. The destination is already masked by the caller; raw addresses
// never reach the bus through this path.
func (p *EventPublisher) PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := struct {
		AccountID         string         `json:"account_id"`
		RequestedAt       time.Time      `json:"requested_at"`
		MaskedDestination string         `json:"masked_destination,omitempty"`
		ExpiresAt         time.Time      `json:"expires_at"`
		Metadata          map[string]any `json:"metadata,omitempty"`
	}{
		AccountID:         event.AccountID,
		RequestedAt:       event.RequestedAt.UTC(),
		MaskedDestination: event.MaskedDestination,
		ExpiresAt:         event.ExpiresAt.UTC(),
		Metadata:          event.Metadata,
	}

	return p.publish(ctx, event.EventID, "account.password.reset_requested", event.AccountID, event.RequestedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
