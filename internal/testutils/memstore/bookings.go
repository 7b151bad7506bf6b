package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
)

// BookingRepo in-memory аналог storage/booking.Repository.
// Create повторяет ограничение непересечения интервалов и внешние ключи из схемы БД.
type BookingRepo struct {
	s *Store
}

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := r.s.enter("booking.Create"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	if err := r.s.checkBookingRefs(b); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, err)
	}

	if b.Status != domain.StatusCancelled {
		for _, other := range r.s.data.bookings {
			if other.PostID == b.PostID && other.IsActive() &&
				domain.Overlaps(b.StartAt, b.EndAt, other.StartAt, other.EndAt) {
				return nil, bookingRepo.ErrSlotTaken
			}
		}
	}

	now := r.s.now()
	b.ID = r.s.nextID()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.data.bookings[b.ID] = *b

	out := *b
	return &out, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if err := r.s.enter("booking.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if err := r.s.enter("booking.GetByClientID"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := r.filter(func(b domain.Booking) bool {
		return b.ClientID == clientID && (status == nil || b.Status == *status)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.After(out[j].StartAt) })
	return out, nil
}

func (r *BookingRepo) GetActiveByPostInRange(_ context.Context, postID int64, from, to time.Time) ([]*domain.Booking, error) {
	if err := r.s.enter("booking.GetActiveByPostInRange"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := r.filter(func(b domain.Booking) bool {
		return b.PostID == postID && b.IsActive() && domain.Overlaps(b.StartAt, b.EndAt, from, to)
	})
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) ListWithFilter(_ context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := r.s.enter("booking.ListWithFilter"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := r.filter(func(b domain.Booking) bool {
		if f.PostID != nil && b.PostID != *f.PostID {
			return false
		}
		if f.From != nil && b.StartAt.Before(*f.From) {
			return false
		}
		if f.To != nil && !b.StartAt.Before(*f.To) {
			return false
		}
		if f.Status != nil {
			return b.Status == *f.Status
		}
		return f.IncludeCancelled || b.IsActive()
	})
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) ListInProgress(ctx context.Context) ([]*domain.Booking, error) {
	status := domain.StatusInProgress
	return r.ListWithFilter(ctx, domain.BookingsFilter{Status: &status})
}

func (r *BookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	if err := r.s.enter("booking.UpdateStatus"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	b.Status = status
	b.UpdatedAt = at
	switch status {
	case domain.StatusInProgress:
		if b.InProgressStartedAt == nil {
			t := at
			b.InProgressStartedAt = &t
		}
	case domain.StatusCompleted:
		t := at
		b.CompletedAt = &t
	case domain.StatusCancelled:
		t := at
		b.CancelledAt = &t
	}
	r.s.data.bookings[id] = b

	return &b, nil
}

func (r *BookingRepo) Rate(_ context.Context, id int64, rating int, comment *string, at time.Time) (*domain.Booking, error) {
	if err := r.s.enter("booking.Rate"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.Rating = &rating
	b.RatingComment = comment
	b.UpdatedAt = at
	r.s.data.bookings[id] = b

	return &b, nil
}

func (r *BookingRepo) ReassignClient(_ context.Context, fromClientID, toClientID int64) (int64, error) {
	if err := r.s.enter("booking.ReassignClient"); err != nil {
		return 0, err
	}
	defer r.s.leave()

	if _, ok := r.s.data.clients[toClientID]; !ok {
		return 0, fmt.Errorf("%w: ReassignClient - execute update: %w: client id=%d", bookingRepo.ErrExecQuery, ErrForeignKey, toClientID)
	}

	var n int64
	for id, b := range r.s.data.bookings {
		if b.ClientID == fromClientID {
			b.ClientID = toClientID
			r.s.data.bookings[id] = b
			n++
		}
	}
	return n, nil
}

// filter вызывается под r.s.mu
func (r *BookingRepo) filter(keep func(domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if keep(b) {
			b := b
			out = append(out, &b)
		}
	}
	return out
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartAt.Equal(bookings[j].StartAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartAt.Before(bookings[j].StartAt)
	})
}
