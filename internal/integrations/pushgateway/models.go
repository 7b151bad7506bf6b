package pushgateway

import "time"

// Message тело запроса к шлюзу
type Message struct {
	NotificationID int64     `json:"notification_id"`
	ClientID       int64     `json:"client_id"`
	Kind           string    `json:"kind"`
	Title          *string   `json:"title,omitempty"`
	Body           string    `json:"body"`
	BookingID      *int64    `json:"booking_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
