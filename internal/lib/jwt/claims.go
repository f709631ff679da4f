// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя email пользователя.
// Subject стандартных claims хранит id пользователя в строковом виде.
package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Электронная почта пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt и пр.)
}

// UserID возвращает id пользователя из subject claim.
func (c *CustomClaims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("jwt.UserID: invalid subject: %w", err)
	}
	return id, nil
}

// GenerateAccessToken создает короткоживущий access-токен с subject = id пользователя.
func (j *MakerImpl) GenerateAccessToken(userID int, email string) (string, error) {
	return j.generate(userID, email, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken создает refresh-токен на 7 дней, подписанный отдельным секретом.
func (j *MakerImpl) GenerateRefreshToken(userID int, email string) (string, error) {
	return j.generate(userID, email, j.refreshSecret, RefreshTokenTTL)
}

func (j *MakerImpl) generate(userID int, email, secret string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken парсит access-токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseAccessToken(tokenStr string) (*CustomClaims, error) {
	return j.parse(tokenStr, j.accessSecret)
}

// ParseRefreshToken парсит refresh-токен с проверкой подписи отдельным секретом.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (*CustomClaims, error) {
	return j.parse(tokenStr, j.refreshSecret)
}

func (j *MakerImpl) parse(tokenStr, secret string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
