package manage_catalog

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	CreatePost(ctx context.Context, req *models.PostRequest) (*models.PostResponse, error)
	UpdatePost(ctx context.Context, id int64, req *models.PostRequest) (*models.PostResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
