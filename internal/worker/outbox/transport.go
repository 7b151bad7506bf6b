package outbox

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/integrations/pushgateway"
)

// Publisher публикация JSON в брокер (pkg/mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key, messageID string, v any) error
}

// PushSender отправка в HTTP шлюз (integrations/pushgateway.Client)
type PushSender interface {
	Send(ctx context.Context, idempotencyKey string, msg *pushgateway.Message) error
}

// AMQPTransport публикует уведомления в topic exchange с ключом notification.<kind>
type AMQPTransport struct {
	publisher Publisher
}

// NewAMQPTransport создает транспорт поверх брокера
func NewAMQPTransport(publisher Publisher) *AMQPTransport {
	return &AMQPTransport{publisher: publisher}
}

func (t *AMQPTransport) Name() string { return "amqp" }

func (t *AMQPTransport) Deliver(ctx context.Context, n *domain.Notification) error {
	msg := FromDomainNotification(n)
	return t.publisher.PublishJSON(ctx, RoutingKey(n.Kind), msg.MessageID, msg)
}

// HTTPTransport отправляет уведомления в push-шлюз
type HTTPTransport struct {
	sender PushSender
}

// NewHTTPTransport создает транспорт поверх push-шлюза
func NewHTTPTransport(sender PushSender) *HTTPTransport {
	return &HTTPTransport{sender: sender}
}

func (t *HTTPTransport) Name() string { return "http" }

func (t *HTTPTransport) Deliver(ctx context.Context, n *domain.Notification) error {
	return t.sender.Send(ctx, MessageID(n.ID), &pushgateway.Message{
		NotificationID: n.ID,
		ClientID:       n.ClientID,
		Kind:           string(n.Kind),
		Title:          n.Title,
		Body:           n.Body,
		BookingID:      n.BookingID,
		CreatedAt:      n.CreatedAt,
	})
}
