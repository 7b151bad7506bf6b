package update_client_profile

import "github.com/m04kA/SMC-PostBookingService/internal/domain"

// Request модель запроса на обновление профиля
type Request struct {
	ClientID int64              // ID клиента из токена
	Patch    domain.ClientPatch // Изменяемые поля
}

// Response модель ответа
type Response struct {
	Client         *domain.Client // Клиент после обновления
	MergedClientID *int64         // ID поглощенной записи, если было слияние
}
