package catalog

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и постов
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error)

	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, onlyEnabled bool) ([]*domain.Post, error)
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
