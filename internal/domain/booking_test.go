package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTransition(t *testing.T) {
	tests := []struct {
		name      string
		from      BookingStatus
		to        BookingStatus
		wantErr   error
		wantNoop  bool
		wantSkips bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed},
		{name: "confirmed to in_progress", from: StatusConfirmed, to: StatusInProgress},
		{name: "in_progress to completed", from: StatusInProgress, to: StatusCompleted},
		{name: "pending to in_progress", from: StatusPending, to: StatusInProgress},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, wantSkips: true},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, wantSkips: true},
		{name: "in_progress again", from: StatusInProgress, to: StatusInProgress, wantNoop: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled},
		{name: "in_progress to cancelled", from: StatusInProgress, to: StatusCancelled},

		{name: "backward", from: StatusConfirmed, to: StatusPending, wantErr: ErrIllegalTransition},
		{name: "same state", from: StatusConfirmed, to: StatusConfirmed, wantErr: ErrIllegalTransition},
		{name: "from completed", from: StatusCompleted, to: StatusCancelled, wantErr: ErrIllegalTransition},
		{name: "from cancelled", from: StatusCancelled, to: StatusConfirmed, wantErr: ErrIllegalTransition},
		{name: "unknown target", from: StatusPending, to: BookingStatus("archived"), wantErr: ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := PlanTransition(tt.from, tt.to)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNoop, tr.Noop)
			assert.Equal(t, tt.wantSkips, tr.SkipsInProgress)
		})
	}
}

func TestCancelledReachableFromEveryNonTerminal(t *testing.T) {
	for status := range statusRank {
		if status.IsTerminal() {
			continue
		}
		_, err := PlanTransition(status, StatusCancelled)
		assert.NoError(t, err, status)
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseBookingStatus("done")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBooking_ProgressStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartAt: start}
	assert.Equal(t, start, b.ProgressStart())

	started := start.Add(7 * time.Minute)
	b.InProgressStartedAt = &started
	assert.Equal(t, started, b.ProgressStart())
}

func TestOverlaps_EdgeTouchingIsFree(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 1, h, m, 0, 0, time.UTC) }

	assert.False(t, Overlaps(at(10, 30), at(11, 0), at(10, 0), at(10, 30)))
	assert.True(t, Overlaps(at(10, 29), at(10, 59), at(10, 0), at(10, 30)))
	assert.False(t, Overlaps(at(9, 30), at(10, 0), at(10, 0), at(10, 30)))
	assert.True(t, Overlaps(at(10, 5), at(10, 10), at(10, 0), at(10, 30)))
}
