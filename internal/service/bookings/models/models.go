package models

import (
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/progress"
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetAdminBookingsRequest запрос на получение бронирований для администратора
type GetAdminBookingsRequest struct {
	PostID           *int64     `json:"postId,omitempty"`           // Фильтр по посту (опционально)
	Date             *time.Time `json:"date,omitempty"`             // Календарная дата в часовом поясе бизнеса (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отмененные
}

// RateBookingRequest запрос на оценку бронирования
type RateBookingRequest struct {
	ClientID int64   `json:"-"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	ServiceID       int64     `json:"serviceId"`
	PostID          int64     `json:"postId"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	InProgressStartedAt *time.Time `json:"inProgressStartedAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`

	Rating        *int    `json:"rating,omitempty"`
	RatingComment *string `json:"ratingComment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ProgressResponse ответ с прогрессом обслуживания
type ProgressResponse struct {
	BookingID        int64     `json:"bookingId"`
	Status           string    `json:"status"`
	StartedAt        time.Time `json:"startedAt"`
	ElapsedSeconds   int64     `json:"elapsedSeconds"`
	RemainingMinutes int       `json:"remainingMinutes"`
	Fraction         float64   `json:"fraction"`
	Label            string    `json:"label"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		ClientID:            b.ClientID,
		ServiceID:           b.ServiceID,
		PostID:              b.PostID,
		StartAt:             b.StartAt,
		EndAt:               b.EndAt,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		Notes:               b.Notes,
		ServiceName:         b.ServiceName,
		ServicePrice:        b.ServicePrice,
		InProgressStartedAt: b.InProgressStartedAt,
		CompletedAt:         b.CompletedAt,
		CancelledAt:         b.CancelledAt,
		Rating:              b.Rating,
		RatingComment:       b.RatingComment,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromProgress конвертирует результат вычисления прогресса в DTO
func FromProgress(b *domain.Booking, p progress.Progress) *ProgressResponse {
	return &ProgressResponse{
		BookingID:        b.ID,
		Status:           string(b.Status),
		StartedAt:        b.ProgressStart(),
		ElapsedSeconds:   int64(p.Elapsed / time.Second),
		RemainingMinutes: p.RemainingMinutes,
		Fraction:         p.Fraction,
		Label:            string(p.Label),
	}
}
