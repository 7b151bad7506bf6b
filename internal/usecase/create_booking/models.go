package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64     // ID клиента из токена
	ServiceID int64     // ID услуги
	PostID    int64     // ID поста
	StartAt   time.Time // Начало слота (абсолютный момент времени)
	Notes     *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	ClientID        int64     // ID клиента
	ServiceID       int64     // ID услуги
	PostID          int64     // ID поста
	StartAt         time.Time // Начало
	EndAt           time.Time // Конец
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
