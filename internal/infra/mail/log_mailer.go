package mail

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/logger"
)

// LogMailer writes rendered mail to the service log instead of
// delivering it. Development driver; the reset URL carries the raw
// token, so this must never run in production.
type LogMailer struct {
	from   string
	logger *zap.Logger
	now    func() time.Time
}

func NewLogMailer(from string, log *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: log, now: time.Now}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email port.PasswordResetEmail) error {
	message := BuildPasswordReset(email, m.from, m.now())

	m.logger.Info("password reset mail (log driver)",
		zap.String("to", logger.MaskEmail(email.To)),
		zap.String("subject", message.Subject),
		zap.String("body", message.TextBody),
	)
	return nil
}

var _ port.Mailer = (*LogMailer)(nil)
