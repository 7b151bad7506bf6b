package models

import (
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// Request модели

// SendRequest сообщение администратора.
// ClientID задан: личное сообщение; не задан: рассылка всем клиентам.
type SendRequest struct {
	ClientID *int64  `json:"clientId,omitempty"`
	Title    *string `json:"title,omitempty"`
	Body     string  `json:"body"`
	Kind     string  `json:"kind"` // admin | news
}

// Response модели

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     *string   `json:"title,omitempty"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	BookingID *int64    `json:"bookingId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// SendResponse ответ на отправку
type SendResponse struct {
	Recipients int64 `json:"recipients"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Kind:      string(n.Kind),
		BookingID: n.BookingID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, *FromDomainNotification(n))
		if !n.IsRead {
			resp.UnreadCount++
		}
	}
	return resp
}
