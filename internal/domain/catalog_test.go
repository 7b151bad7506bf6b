package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_Window_UsesBusinessOffset(t *testing.T) {
	loc := time.FixedZone("UTC+03:00", 3*3600)
	p := &Post{ID: 1, WorkStart: "09:00", WorkEnd: "18:00", IntervalMinutes: 30}

	start, end, err := p.Window(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC), end.UTC())
}

func TestPost_Window_RejectsInvertedHours(t *testing.T) {
	p := &Post{ID: 1, WorkStart: "18:00", WorkEnd: "09:00"}
	_, _, err := p.Window(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Error(t, err)
}

func TestPost_Fits(t *testing.T) {
	p := &Post{ID: 1, WorkStart: "09:00", WorkEnd: "18:00"}
	at := func(h, m int) time.Time { return time.Date(2025, 3, 1, h, m, 0, 0, time.UTC) }

	ok, err := p.Fits(at(17, 30), at(18, 0), time.UTC)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Fits(at(17, 45), at(18, 15), time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Fits(at(8, 45), at(9, 15), time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLifecycleNotification(t *testing.T) {
	b := &Booking{ID: 9, ClientID: 3, ServiceName: "Мойка", StartAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}

	for _, status := range []BookingStatus{StatusConfirmed, StatusInProgress, StatusCompleted} {
		n := LifecycleNotification(b, status, time.UTC)
		require.NotNil(t, n, status)
		assert.Equal(t, int64(3), n.ClientID)
		assert.Equal(t, NotificationService, n.Kind)
		require.NotNil(t, n.BookingID)
		assert.Equal(t, int64(9), *n.BookingID)
	}

	assert.Nil(t, LifecycleNotification(b, StatusCancelled, time.UTC))
	assert.Nil(t, LifecycleNotification(b, StatusPending, time.UTC))
}

func TestLifecycleNotification_ConfirmedUsesBusinessOffset(t *testing.T) {
	// lib/pq возвращает timestamptz в UTC
	b := &Booking{ID: 9, ClientID: 3, ServiceName: "Мойка", StartAt: time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)}
	msk := time.FixedZone("UTC+3", 3*60*60)

	n := LifecycleNotification(b, StatusConfirmed, msk)
	require.NotNil(t, n)
	assert.Equal(t, "Мойка, 01.03.2025 10:00", n.Body)
}
