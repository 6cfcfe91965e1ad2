package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/events"
)

// NotificationService sends welcome notifications and writes the login audit trail.
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
	n.dispatcher.Subscribe(events.EventDoctorRegistered, n.handleDoctorRegistered)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventLoginSucceeded, n.handleLoginSucceeded)
	n.dispatcher.Subscribe(events.EventLoginFailed, n.handleLoginFailed)
}

func (n *NotificationService) handleDoctorRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("DoctorRegistered", zap.Int64("doctor_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWelcomeEmailStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Int64("user_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWelcomeEmailStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	n.logger.Info("LoginSucceeded",
		zap.String("event_id", event.ID),
		zap.Int64("subject_id", event.SubjectID),
		zap.String("role", string(event.Role)))
	return nil
}

func (n *NotificationService) handleLoginFailed(_ context.Context, event events.Event) error {
	reason := ""
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		reason = payload.Reason
	}
	n.logger.Warn("LoginFailed",
		zap.String("event_id", event.ID),
		zap.String("email", event.Email),
		zap.String("reason", reason))
	return nil
}

func (n *NotificationService) sendWelcomeEmailStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendWelcomeEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", event.Email),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
