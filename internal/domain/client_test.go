package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/pkg/ptr"
)

func TestIsRealPhone(t *testing.T) {
	tests := []struct {
		phone    string
		deviceID string
		want     bool
	}{
		{phone: "+7 (912) 345-67-89", deviceID: "abc", want: true},
		{phone: "123456", deviceID: "abc", want: true},
		{phone: "12345", deviceID: "abc", want: false},
		{phone: "", deviceID: "abc", want: false},
		{phone: "   ", deviceID: "abc", want: false},
		{phone: "device:8f1c2d", deviceID: "8f1c2d", want: false},
		{phone: "DEVICE:123456789", deviceID: "x", want: false},
		{phone: "7777-123456", deviceID: "7777-123456", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRealPhone(tt.phone, tt.deviceID), tt.phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "79123456789", NormalizePhone("+7 (912) 345-67-89"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestClientPatch_ApplyTo(t *testing.T) {
	t.Run("real phone gets normalized form", func(t *testing.T) {
		c := &Client{DeviceID: "dev-1"}
		ClientPatch{Phone: ptr.Ptr(" +7 912 345 67 89 "), Name: ptr.Ptr("Ivan")}.ApplyTo(c)

		require.NotNil(t, c.PhoneNorm)
		assert.Equal(t, "79123456789", *c.PhoneNorm)
		assert.Equal(t, "+7 912 345 67 89", *c.Phone)
		assert.Equal(t, "Ivan", *c.Name)
	})

	t.Run("placeholder stored without normalized form", func(t *testing.T) {
		c := &Client{DeviceID: "dev-1", PhoneNorm: ptr.Ptr("79123456789")}
		ClientPatch{Phone: ptr.Ptr("device:dev-1")}.ApplyTo(c)

		assert.Equal(t, "device:dev-1", *c.Phone)
		assert.Nil(t, c.PhoneNorm)
	})

	t.Run("empty phone clears both", func(t *testing.T) {
		c := &Client{Phone: ptr.Ptr("123456"), PhoneNorm: ptr.Ptr("123456")}
		ClientPatch{Phone: ptr.Ptr("")}.ApplyTo(c)

		assert.Nil(t, c.Phone)
		assert.Nil(t, c.PhoneNorm)
	})

	t.Run("nil fields keep values", func(t *testing.T) {
		c := &Client{Email: ptr.Ptr("a@b.c")}
		ClientPatch{}.ApplyTo(c)
		assert.Equal(t, "a@b.c", *c.Email)
	})
}

func TestMergedLoyaltyPoints(t *testing.T) {
	assert.Equal(t, 200, MergedLoyaltyPoints(120, 80))
	assert.Equal(t, 0, MergedLoyaltyPoints(-50, 10))
}
