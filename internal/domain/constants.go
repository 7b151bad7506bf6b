package domain

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxRatingCommentLength = 500
	MinRating              = 1
	MaxRating              = 5

	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 720 // 12 hours
	MinIntervalMinutes        = 1
	MaxIntervalMinutes        = 720

	MaxNameLength = 200
	MaxBodyLength = 2000
)

// Client identity constants
const (
	// PhonePlaceholderPrefix префикс телефона-заглушки, который клиент получает при регистрации
	PhonePlaceholderPrefix = "device:"
	MinRealPhoneDigits     = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
