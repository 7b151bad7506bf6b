package get_available_slots

import "time"

// Request модель запроса на получение слотов
type Request struct {
	ServiceID int64     // ID услуги
	PostID    int64     // ID поста
	Date      time.Time // Календарная дата (время и часовой пояс игнорируются)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Запрошенная дата
	PostID          int64     // ID поста
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Длительность услуги
	Slots           []Slot    // Слоты по возрастанию времени начала
}

// Slot модель временного слота
type Slot struct {
	StartAt     time.Time // Начало слота в часовом поясе бизнеса
	EndAt       time.Time // Конец слота (начало + длительность услуги)
	IsAvailable bool      // Свободен ли слот
}
