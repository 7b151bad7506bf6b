package register_client

// RegisterRequest HTTP request model
type RegisterRequest struct {
	DeviceID string `json:"deviceId"`
}

// RegisterResponse HTTP response model
type RegisterResponse struct {
	ClientID int64  `json:"clientId"`
	Token    string `json:"token"`
}
