package domain

import (
	"strings"
	"time"
)

// Client account anchored to a device, optionally to a real phone
type Client struct {
	ID               int64
	DeviceID         string
	Phone            *string
	PhoneNorm        *string
	LoyaltyPoints    int
	Name             *string
	Email            *string
	Telegram         *string
	Instagram        *string
	SelectedPostID   *int64
	SelectedCategory *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizePhone оставляет в номере только цифры
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsRealPhone отличает настоящий номер от заглушки:
// номер не пустой, не содержит device id клиента, не начинается с PhonePlaceholderPrefix
// и содержит не меньше MinRealPhoneDigits цифр
func IsRealPhone(phone, deviceID string) bool {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(trimmed), PhonePlaceholderPrefix) {
		return false
	}
	if deviceID != "" && strings.Contains(trimmed, deviceID) {
		return false
	}
	return len(NormalizePhone(trimmed)) >= MinRealPhoneDigits
}

// ClientPatch частичное обновление профиля, nil поле не меняется
type ClientPatch struct {
	Name             *string
	Phone            *string
	Email            *string
	Telegram         *string
	Instagram        *string
	SelectedPostID   *int64
	SelectedCategory *string
}

// IsEmpty returns true if no field is set
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.Telegram == nil &&
		p.Instagram == nil && p.SelectedPostID == nil && p.SelectedCategory == nil
}

// ApplyTo переносит заданные поля в клиента.
// Для телефона пересчитывается PhoneNorm: заглушка хранится как есть с PhoneNorm = nil.
func (p ClientPatch) ApplyTo(c *Client) {
	if p.Name != nil {
		c.Name = p.Name
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		if phone == "" {
			c.Phone = nil
			c.PhoneNorm = nil
		} else {
			c.Phone = &phone
			c.PhoneNorm = nil
			if IsRealPhone(phone, c.DeviceID) {
				norm := NormalizePhone(phone)
				c.PhoneNorm = &norm
			}
		}
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.Telegram != nil {
		c.Telegram = p.Telegram
	}
	if p.Instagram != nil {
		c.Instagram = p.Instagram
	}
	if p.SelectedPostID != nil {
		c.SelectedPostID = p.SelectedPostID
	}
	if p.SelectedCategory != nil {
		c.SelectedCategory = p.SelectedCategory
	}
}

// MergedLoyaltyPoints баланс после слияния двух записей, не меньше нуля
func MergedLoyaltyPoints(self, other int) int {
	sum := self + other
	if sum < 0 {
		return 0
	}
	return sum
}
