package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/events"
)

// Publisher fans events out to external subscribers. *persistence.Redis
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. publisher may be nil, in which
// case events are only logged.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketIngested, n.handleTicketIngested)
}

func (n *NotificationService) handleTicketIngested(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketIngested", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.publishEvent(ctx, event)
	return nil
}

// publishEvent logs failures instead of returning them.
func (n *NotificationService) publishEvent(ctx context.Context, event events.Event) {
	channel := strings.TrimSpace(n.cfg.EventsChannel)
	if n.publisher == nil || channel == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("encode event", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return
	}
	receivers, err := n.publisher.Publish(ctx, channel, body)
	if err != nil {
		n.logger.Warn("publish event",
			zap.String("channel", channel),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return
	}
	n.logger.Debug("event published",
		zap.String("channel", channel),
		zap.String("event_type", string(event.Type)),
		zap.Int64("receivers", receivers))
}
