package register_client

// Request модель запроса регистрации устройства
type Request struct {
	DeviceID string
}

// Response модель ответа
type Response struct {
	ClientID int64  // ID клиента
	Token    string // Bearer токен
	Created  bool   // true, если клиент создан этим запросом
}
