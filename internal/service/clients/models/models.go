package models

import (
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// ClientResponse профиль клиента
type ClientResponse struct {
	ID               int64     `json:"id"`
	Phone            *string   `json:"phone,omitempty"`
	Name             *string   `json:"name,omitempty"`
	Email            *string   `json:"email,omitempty"`
	Telegram         *string   `json:"telegram,omitempty"`
	Instagram        *string   `json:"instagram,omitempty"`
	LoyaltyPoints    int       `json:"loyaltyPoints"`
	SelectedPostID   *int64    `json:"selectedPostId,omitempty"`
	SelectedCategory *string   `json:"selectedCategory,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromDomainClient конвертирует domain модель в DTO.
// Телефон-заглушка наружу не отдается.
func FromDomainClient(c *domain.Client) *ClientResponse {
	resp := &ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Telegram:         c.Telegram,
		Instagram:        c.Instagram,
		LoyaltyPoints:    c.LoyaltyPoints,
		SelectedPostID:   c.SelectedPostID,
		SelectedCategory: c.SelectedCategory,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Phone != nil && c.PhoneNorm != nil {
		resp.Phone = c.Phone
	}
	return resp
}
