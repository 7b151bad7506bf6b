package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
)

// CatalogRepo in-memory аналог storage/catalog.Repository
type CatalogRepo struct {
	s *Store
}

func (r *CatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if err := r.s.enter("catalog.GetService"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	svc, ok := r.s.data.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *CatalogRepo) ListServices(_ context.Context, onlyActive bool) ([]*domain.Service, error) {
	if err := r.s.enter("catalog.ListServices"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := make([]*domain.Service, 0)
	for _, svc := range r.s.data.services {
		if onlyActive && !svc.IsActive {
			continue
		}
		svc := svc
		out = append(out, &svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CatalogRepo) CreateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if err := r.s.enter("catalog.CreateService"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	now := r.s.now()
	svc.ID = r.s.nextID()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	r.s.data.services[svc.ID] = *svc

	out := *svc
	return &out, nil
}

func (r *CatalogRepo) UpdateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if err := r.s.enter("catalog.UpdateService"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	old, ok := r.s.data.services[svc.ID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	svc.CreatedAt = old.CreatedAt
	svc.UpdatedAt = r.s.now()
	r.s.data.services[svc.ID] = *svc

	out := *svc
	return &out, nil
}

func (r *CatalogRepo) GetPost(_ context.Context, id int64) (*domain.Post, error) {
	if err := r.s.enter("catalog.GetPost"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	p, ok := r.s.data.posts[id]
	if !ok {
		return nil, catalogRepo.ErrPostNotFound
	}
	return &p, nil
}

func (r *CatalogRepo) ListPosts(_ context.Context, onlyEnabled bool) ([]*domain.Post, error) {
	if err := r.s.enter("catalog.ListPosts"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := make([]*domain.Post, 0)
	for _, p := range r.s.data.posts {
		if onlyEnabled && !p.IsEnabled {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CatalogRepo) CreatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if err := r.s.enter("catalog.CreatePost"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	now := r.s.now()
	p.ID = r.s.nextID()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.data.posts[p.ID] = *p

	out := *p
	return &out, nil
}

func (r *CatalogRepo) UpdatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if err := r.s.enter("catalog.UpdatePost"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	old, ok := r.s.data.posts[p.ID]
	if !ok {
		return nil, catalogRepo.ErrPostNotFound
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.data.posts[p.ID] = *p

	out := *p
	return &out, nil
}
