package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/config"
	"github.com/spec-kit/support-queue/internal/events"
)

// Broadcaster forwards events to consumers outside the process.
type Broadcaster interface {
	Broadcast(ctx context.Context, event events.Event) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher  events.Dispatcher
	broadcaster Broadcaster
	logger      *zap.Logger
	cfg         config.NotificationConfig
}

// NewNotificationService creates the service. broadcaster may be nil.
func NewNotificationService(dispatcher events.Dispatcher, broadcaster Broadcaster, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		logger:      logger,
		cfg:         cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueSubmitted, n.handleIssueSubmitted)
	n.dispatcher.Subscribe(events.EventIssueBooked, n.handleIssueBooked)
	n.dispatcher.Subscribe(events.EventIssueRescheduled, n.handleIssueBooked)
	n.dispatcher.Subscribe(events.EventIssueServed, n.handleIssueServed)
	n.dispatcher.Subscribe(events.EventIssueCompleted, n.handleIssueCompleted)
	n.dispatcher.Subscribe(events.EventQueuesReset, n.handleQueuesReset)
}

func (n *NotificationService) handleIssueSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueSubmitted", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return n.broadcast(ctx, event)
}

func (n *NotificationService) handleIssueBooked(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueBooked", zap.String("issue_id", event.IssueID), zap.String("type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return n.broadcast(ctx, event)
}

func (n *NotificationService) handleIssueServed(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueServed", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return n.broadcast(ctx, event)
}

func (n *NotificationService) handleIssueCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueCompleted", zap.String("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	return n.broadcast(ctx, event)
}

func (n *NotificationService) handleQueuesReset(ctx context.Context, event events.Event) error {
	n.logger.Warn("QueuesReset")
	n.sendWebhookNotificationStub(ctx, event)
	return n.broadcast(ctx, event)
}

func (n *NotificationService) broadcast(ctx context.Context, event events.Event) error {
	if n.broadcaster == nil {
		return nil
	}
	return n.broadcaster.Broadcast(ctx, event)
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("issue_id", event.IssueID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("issue_id", event.IssueID),
		zap.String("event_type", string(event.Type)))
}
