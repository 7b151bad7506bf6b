package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken токен не прошел проверку подписи, срока действия или формата
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrEmptySecret секрет для подписи не задан
	ErrEmptySecret = errors.New("auth: empty signing secret")
)

// Claims данные, которые кладутся в токен клиента
type Claims struct {
	ClientID int64 `json:"cid"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет HS256 токены клиентов
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager создает TokenManager. ttl <= 0 означает бессрочные токены.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue выпускает токен для клиента
func (m *TokenManager) Issue(clientID int64) (string, error) {
	now := m.now()
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(clientID, 10),
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет токен и возвращает ID клиента
func (m *TokenManager) Parse(tokenStr string) (int64, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.ClientID <= 0 {
		return 0, ErrInvalidToken
	}
	return c.ClientID, nil
}
