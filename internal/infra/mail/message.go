package mail

import (
	"fmt"
	"time"

	"github.com/articlepost/account-service/internal/core/port"
)

// Message is a fully rendered outbound email.
type Message struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}

// BuildPasswordReset renders the reset instructions. The validity window
// in the subject is derived from the token expiry so subject and token
// never disagree.
func BuildPasswordReset(email port.PasswordResetEmail, from string, now time.Time) Message {
	minutes := int(email.ExpiresAt.Sub(now).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	return Message{
		To:      email.To,
		From:    from,
		Subject: fmt.Sprintf("Your password reset token (valid for only %d minutes)", minutes),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nForgot your password? Submit a PATCH request with your new password to: %s\n\nIf you didn't forget your password, please ignore this email!\n",
			email.Name, email.ResetURL,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Forgot your password? Submit a PATCH request with your new password to: <a href="%s">%s</a></p><p>If you didn't forget your password, please ignore this email!</p>`,
			email.Name, email.ResetURL, email.ResetURL,
		),
	}
}
