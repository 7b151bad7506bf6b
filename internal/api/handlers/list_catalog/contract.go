package list_catalog

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error)
	ListPosts(ctx context.Context, onlyEnabled bool) (*models.PostListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
