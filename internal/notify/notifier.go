// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	"isabella-notion/internal/common/config"
	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/logger"
)

// EmailSender is the slice of the SES client the notifier needs.
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) error
}

// TopicPublisher is the slice of the SNS client the notifier needs.
type TopicPublisher interface {
	PublishMessage(ctx context.Context, topicARN, subject, message string) error
}

// Notifier sends best-effort notifications when a template is generated.
// Channel failures are logged, never propagated: notification delivery must
// not affect the request outcome.
type Notifier struct {
	cfg    config.NotificationConfig
	email  EmailSender
	topic  TopicPublisher
	logger logger.Logger
}

func New(cfg config.NotificationConfig, email EmailSender, topic TopicPublisher, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		email:  email,
		topic:  topic,
		logger: log.With(map[string]interface{}{"component": "notifier"}),
	}
}

// TemplateCreated announces a freshly generated template on every enabled
// channel.
func (n *Notifier) TemplateCreated(ctx context.Context, templateName, templateURL string) {
	subject := fmt.Sprintf("Template created: %s", templateName)
	body := fmt.Sprintf("A new workspace template %q was generated.\n\n%s", templateName, templateURL)

	if n.cfg.Email.Enabled && n.email != nil {
		if err := n.email.SendPlainEmail(ctx, n.cfg.Email.FromEmail, n.cfg.Email.ToEmail, subject, body); err != nil {
			n.recordFailure("email", err)
		}
	}

	if n.cfg.SNS.Enabled && n.topic != nil {
		if err := n.topic.PublishMessage(ctx, n.cfg.SNS.TopicARN, subject, body); err != nil {
			n.recordFailure("sns", err)
		}
	}
}

func (n *Notifier) recordFailure(channel string, err error) {
	sendErr := apperrors.NewNotificationSendFailedError(channel, err)
	n.logger.Warn("notification delivery failed", map[string]interface{}{
		"channel": channel,
		"error":   sendErr.Error(),
		"details": sendErr.Details,
	})
}
