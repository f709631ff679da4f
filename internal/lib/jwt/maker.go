// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки пары токенов: короткоживущего
// access-токена и refresh-токена на 7 дней. Токены подписываются разными секретами.
// MakerImpl — конкретная реализация с использованием секретных ключей и сроков жизни.
package jwt

import (
	"time"
)

// RefreshTokenTTL — срок жизни refresh-токена.
const RefreshTokenTTL = 7 * 24 * time.Hour

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken создаёт access-токен с subject = id пользователя.
	GenerateAccessToken(userID int, email string) (string, error)
	// GenerateRefreshToken создаёт refresh-токен, подписанный отдельным секретом.
	GenerateRefreshToken(userID int, email string) (string, error)
	// ParseAccessToken проверяет access-токен и возвращает его claims.
	ParseAccessToken(tokenStr string) (*CustomClaims, error)
	// ParseRefreshToken проверяет refresh-токен и возвращает его claims.
	ParseRefreshToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретных ключей
// и времени жизни access-токена (TTL).
type MakerImpl struct {
	accessSecret  string        // Секретный ключ для подписи access-токенов.
	refreshSecret string        // Секретный ключ для подписи refresh-токенов.
	accessTTL     time.Duration // Время жизни access-токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретных ключей и TTL.
func NewJWTMaker(accessSecret, refreshSecret string, accessTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
	}
}
