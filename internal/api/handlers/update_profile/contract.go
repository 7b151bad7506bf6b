package update_profile

import (
	"context"

	updateProfile "github.com/m04kA/SMC-PostBookingService/internal/usecase/update_client_profile"
)

type UpdateProfileUseCase interface {
	Execute(ctx context.Context, req *updateProfile.Request) (*updateProfile.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
