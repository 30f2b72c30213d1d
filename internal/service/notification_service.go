package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/config"
	"github.com/spec-kit/verify-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVerificationLinkIssued, n.handleLinkIssued)
	n.dispatcher.Subscribe(events.EventVerificationSucceeded, n.handleVerificationSucceeded)
	n.dispatcher.Subscribe(events.EventVerificationRejected, n.handleVerificationRejected)
}

func (n *NotificationService) handleLinkIssued(ctx context.Context, event events.Event) error {
	n.logger.Info("VerificationLinkIssued", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleVerificationSucceeded(ctx context.Context, event events.Event) error {
	n.logger.Info("VerificationSucceeded", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVerificationRejected(ctx context.Context, event events.Event) error {
	n.logger.Info("VerificationRejected", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
