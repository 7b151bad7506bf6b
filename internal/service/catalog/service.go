package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг и постов
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices получает услуги. Для клиентов onlyActive = true.
func (s *Service) ListServices(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services, onlyActive=%t", len(services), onlyActive)
	return models.FromDomainServiceList(services), nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q, duration=%d", req.Name, req.DurationMinutes)

	if err := validateService(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService заменяет данные услуги.
// Существующие бронирования не меняются: в них хранится снимок услуги.
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%d", id)

	if err := validateService(req); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateService(ctx, req.ToDomain(id))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d, active=%t", id, updated.IsActive)
	return models.FromDomainService(updated), nil
}

// ListPosts получает посты. Для клиентов onlyEnabled = true.
func (s *Service) ListPosts(ctx context.Context, onlyEnabled bool) (*models.PostListResponse, error) {
	posts, err := s.catalogRepo.ListPosts(ctx, onlyEnabled)
	if err != nil {
		s.logger.Error("ListPosts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPosts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPosts: fetched %d posts, onlyEnabled=%t", len(posts), onlyEnabled)
	return models.FromDomainPostList(posts), nil
}

// CreatePost создает пост
func (s *Service) CreatePost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error) {
	s.logger.Info("CreatePost: name=%q, hours=%s-%s, interval=%d", req.Name, req.WorkStart, req.WorkEnd, req.IntervalMinutes)

	if err := validatePost(req); err != nil {
		s.logger.Warn("CreatePost: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreatePost(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreatePost: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePost - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePost: created post id=%d", created.ID)
	return models.FromDomainPost(created), nil
}

// UpdatePost заменяет данные поста
func (s *Service) UpdatePost(ctx context.Context, id int64, req *models.PostRequest) (*models.PostResponse, error) {
	s.logger.Info("UpdatePost: id=%d", id)

	if err := validatePost(req); err != nil {
		s.logger.Warn("UpdatePost: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdatePost(ctx, req.ToDomain(id))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPostNotFound) {
			s.logger.Warn("UpdatePost: post id=%d not found", id)
			return nil, ErrPostNotFound
		}
		s.logger.Error("UpdatePost: repository error for post id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePost - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePost: updated post id=%d, enabled=%t", id, updated.IsEnabled)
	return models.FromDomainPost(updated), nil
}
