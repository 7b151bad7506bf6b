package models

import (
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/pkg/types"
)

// Request модели

// ServiceRequest данные услуги для создания и полной замены
type ServiceRequest struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        *string `json:"category,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"` // nil = true
}

// PostRequest данные поста для создания и полной замены
type PostRequest struct {
	Name            string           `json:"name"`
	IsEnabled       *bool            `json:"isEnabled,omitempty"` // nil = true
	WorkStart       types.TimeString `json:"workStart"`           // "09:00"
	WorkEnd         types.TimeString `json:"workEnd"`             // "21:00"
	IntervalMinutes int              `json:"intervalMinutes"`
}

// ToDomain конвертирует запрос в domain модель
func (r *ServiceRequest) ToDomain(id int64) *domain.Service {
	return &domain.Service{
		ID:              id,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		IsActive:        r.IsActive == nil || *r.IsActive,
	}
}

// ToDomain конвертирует запрос в domain модель
func (r *PostRequest) ToDomain(id int64) *domain.Post {
	return &domain.Post{
		ID:              id,
		Name:            r.Name,
		IsEnabled:       r.IsEnabled == nil || *r.IsEnabled,
		WorkStart:       r.WorkStart,
		WorkEnd:         r.WorkEnd,
		IntervalMinutes: r.IntervalMinutes,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Category        *string   `json:"category,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// PostResponse ответ с данными поста
type PostResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	IsEnabled       bool             `json:"isEnabled"`
	WorkStart       types.TimeString `json:"workStart"`
	WorkEnd         types.TimeString `json:"workEnd"`
	IntervalMinutes int              `json:"intervalMinutes"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// PostListResponse ответ со списком постов
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainPost конвертирует domain модель в DTO
func FromDomainPost(p *domain.Post) *PostResponse {
	return &PostResponse{
		ID:              p.ID,
		Name:            p.Name,
		IsEnabled:       p.IsEnabled,
		WorkStart:       p.WorkStart,
		WorkEnd:         p.WorkEnd,
		IntervalMinutes: p.IntervalMinutes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainPostList конвертирует список domain моделей в DTO
func FromDomainPostList(posts []*domain.Post) *PostListResponse {
	resp := &PostListResponse{Posts: make([]PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, *FromDomainPost(p))
	}
	return resp
}
