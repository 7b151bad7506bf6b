package update_profile

import (
	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	clientModels "github.com/m04kA/SMC-PostBookingService/internal/service/clients/models"
	updateProfile "github.com/m04kA/SMC-PostBookingService/internal/usecase/update_client_profile"
)

// UpdateProfileRequest HTTP request model, отсутствующее поле не меняется
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Email            *string `json:"email,omitempty"`
	Telegram         *string `json:"telegram,omitempty"`
	Instagram        *string `json:"instagram,omitempty"`
	SelectedPostID   *int64  `json:"selectedPostId,omitempty"`
	SelectedCategory *string `json:"selectedCategory,omitempty"`
}

// UpdateProfileResponse HTTP response model
type UpdateProfileResponse struct {
	*clientModels.ClientResponse
	MergedClientID *int64 `json:"mergedClientId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateProfileRequest) ToUseCaseRequest(clientID int64) *updateProfile.Request {
	return &updateProfile.Request{
		ClientID: clientID,
		Patch: domain.ClientPatch{
			Name:             r.Name,
			Phone:            r.Phone,
			Email:            r.Email,
			Telegram:         r.Telegram,
			Instagram:        r.Instagram,
			SelectedPostID:   r.SelectedPostID,
			SelectedCategory: r.SelectedCategory,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateProfile.Response) *UpdateProfileResponse {
	return &UpdateProfileResponse{
		ClientResponse: clientModels.FromDomainClient(resp.Client),
		MergedClientID: resp.MergedClientID,
	}
}
