package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
)

// ClientRepo in-memory аналог storage/client.Repository.
// Update повторяет уникальный индекс по phone_norm.
type ClientRepo struct {
	s *Store
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	if err := r.s.enter("client.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	c, ok := r.s.data.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return &c, nil
}

func (r *ClientRepo) GetByDeviceID(_ context.Context, deviceID string) (*domain.Client, error) {
	if err := r.s.enter("client.GetByDeviceID"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	for _, c := range r.s.data.clients {
		if c.DeviceID == deviceID {
			return &c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *ClientRepo) FindByPhoneNorm(_ context.Context, phoneNorm string, excludeID int64) (*domain.Client, error) {
	if err := r.s.enter("client.FindByPhoneNorm"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	for _, c := range r.s.data.clients {
		if c.ID != excludeID && c.PhoneNorm != nil && *c.PhoneNorm == phoneNorm {
			return &c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *ClientRepo) CreateOrGet(_ context.Context, deviceID string) (*domain.Client, bool, error) {
	if err := r.s.enter("client.CreateOrGet"); err != nil {
		return nil, false, err
	}
	defer r.s.leave()

	for _, c := range r.s.data.clients {
		if c.DeviceID == deviceID {
			return &c, false, nil
		}
	}

	now := r.s.now()
	c := domain.Client{ID: r.s.nextID(), DeviceID: deviceID, CreatedAt: now, UpdatedAt: now}
	r.s.data.clients[c.ID] = c
	return &c, true, nil
}

func (r *ClientRepo) Update(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if err := r.s.enter("client.Update"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	old, ok := r.s.data.clients[c.ID]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	if c.PhoneNorm != nil {
		for _, other := range r.s.data.clients {
			if other.ID != c.ID && other.PhoneNorm != nil && *other.PhoneNorm == *c.PhoneNorm {
				return nil, clientRepo.ErrPhoneTaken
			}
		}
	}

	updated := *c
	updated.DeviceID = old.DeviceID
	updated.LoyaltyPoints = old.LoyaltyPoints
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.data.clients[c.ID] = updated

	return &updated, nil
}

func (r *ClientRepo) SetLoyaltyPoints(_ context.Context, id int64, points int) error {
	if err := r.s.enter("client.SetLoyaltyPoints"); err != nil {
		return err
	}
	defer r.s.leave()

	c, ok := r.s.data.clients[id]
	if !ok {
		return clientRepo.ErrClientNotFound
	}
	c.LoyaltyPoints = points
	r.s.data.clients[id] = c
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id int64) error {
	if err := r.s.enter("client.Delete"); err != nil {
		return err
	}
	defer r.s.leave()

	if _, ok := r.s.data.clients[id]; !ok {
		return clientRepo.ErrClientNotFound
	}
	delete(r.s.data.clients, id)
	return nil
}

func (r *ClientRepo) ListIDs(_ context.Context) ([]int64, error) {
	if err := r.s.enter("client.ListIDs"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	ids := make([]int64, 0, len(r.s.data.clients))
	for id := range r.s.data.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
