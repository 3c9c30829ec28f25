package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/kafka"
	"github.com/articlepost/account-service/internal/infra/logger"
)

const outboundMailTopic = "mail.outbound"

// KafkaMailer relays rendered email to the outbound mail topic, where a
// delivery worker picks it up. Enqueueing is what this service calls
// "sent"; delivery retries are the worker's concern.
type KafkaMailer struct {
	producer *kafka.Producer
	from     string
	logger   *zap.Logger
	now      func() time.Time
}

func NewKafkaMailer(producer *kafka.Producer, from string, log *zap.Logger) *KafkaMailer {
	return &KafkaMailer{
		producer: producer,
		from:     from,
		logger:   log,
		now:      time.Now,
	}
}

func (m *KafkaMailer) SendPasswordReset(ctx context.Context, email port.PasswordResetEmail) error {
	message := BuildPasswordReset(email, m.from, m.now())

	bytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	producerMessage := &sarama.ProducerMessage{
		Topic: m.producer.TopicName(outboundMailTopic),
		Key:   sarama.StringEncoder(email.To),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case m.producer.Producer().Input() <- producerMessage:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.logger.Info("password reset mail enqueued",
		zap.String("to", logger.MaskEmail(email.To)),
		zap.Time("expires_at", email.ExpiresAt),
	)
	return nil
}

var _ port.Mailer = (*KafkaMailer)(nil)
