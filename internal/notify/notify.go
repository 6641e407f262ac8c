// Package notify fans a message out to a user's in-app inbox, email and SMS.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// EmailSender delivers an email message.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// LogEmailSender writes emails to the log instead of a mail provider.
type LogEmailSender struct {
	Log *slog.Logger
}

func (s LogEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	s.Log.InfoContext(ctx, "email sent", "component", "notify", "channel", "email",
		"to", to, "subject", subject, "body_len", len(body))
	return nil
}

// LogSMSSender writes text messages to the log instead of an SMS gateway.
type LogSMSSender struct {
	Log *slog.Logger
}

func (s LogSMSSender) SendSMS(ctx context.Context, to, body string) error {
	s.Log.InfoContext(ctx, "sms sent", "component", "notify", "channel", "sms",
		"to", to, "body_len", len(body))
	return nil
}

// Publisher is what the rest of the system uses to notify a user.
type Publisher interface {
	Notify(ctx context.Context, user *model.User, kind model.NotificationKind, title, message string)
}

// Notifier stores the in-app notification and forwards it to email and SMS.
// Failures are logged and never returned.
type Notifier struct {
	repo  repository.NotificationRepository
	email EmailSender
	sms   SMSSender
	now   func() time.Time
}

// NewNotifier builds a Notifier. Nil channels are skipped.
func NewNotifier(repo repository.NotificationRepository, email EmailSender, sms SMSSender) *Notifier {
	return &Notifier{repo: repo, email: email, sms: sms, now: time.Now}
}

var _ Publisher = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, user *model.User, kind model.NotificationKind, title, message string) {
	if user == nil {
		return
	}
	log := logger.FromContext(ctx).With("component", "notify", "user_id", user.ID, "kind", string(kind))

	_, err := n.repo.Create(ctx, &model.Notification{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: n.now().UTC(),
	})
	if err != nil {
		log.Error("store notification failed", "error", err)
	}

	if n.email != nil && user.Email != "" {
		if err := n.email.SendEmail(ctx, user.Email, title, message); err != nil {
			log.Warn("email delivery failed", "error", err)
		}
	}
	if n.sms != nil && user.Phone != "" {
		if err := n.sms.SendSMS(ctx, user.Phone, fmt.Sprintf("%s: %s", title, message)); err != nil {
			log.Warn("sms delivery failed", "error", err)
		}
	}
}
