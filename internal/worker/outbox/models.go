package outbox

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// messageNamespace пространство имен для детерминированных идентификаторов сообщений
var messageNamespace = uuid.MustParse("5b1f7c3e-8f0a-4d0e-9a53-2b8f6f0f3c11")

// Message полезная нагрузка уведомления для брокера
type Message struct {
	MessageID      string    `json:"message_id"`
	NotificationID int64     `json:"notification_id"`
	ClientID       int64     `json:"client_id"`
	Kind           string    `json:"kind"`
	Title          *string   `json:"title,omitempty"`
	Body           string    `json:"body"`
	BookingID      *int64    `json:"booking_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageID стабильный идентификатор уведомления.
// Повторная доставка той же записи дает тот же идентификатор.
func MessageID(notificationID int64) string {
	return uuid.NewSHA1(messageNamespace, []byte("notification:"+strconv.FormatInt(notificationID, 10))).String()
}

// RoutingKey ключ маршрутизации topic exchange
func RoutingKey(kind domain.NotificationKind) string {
	return "notification." + string(kind)
}

// FromDomainNotification конвертирует доменное уведомление в сообщение
func FromDomainNotification(n *domain.Notification) *Message {
	return &Message{
		MessageID:      MessageID(n.ID),
		NotificationID: n.ID,
		ClientID:       n.ClientID,
		Kind:           string(n.Kind),
		Title:          n.Title,
		Body:           n.Body,
		BookingID:      n.BookingID,
		CreatedAt:      n.CreatedAt,
	}
}
