// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, push-токен устройства
// и серверную часть refresh-токена.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID                  int        // Идентификатор пользователя
	Name                string     // Отображаемое имя
	Email               string     // Электронная почта (уникальная)
	PasswordHash        string     // Хэш пароля пользователя
	FCMToken            *string    // Push-токен устройства (nil — не зарегистрирован)
	RefreshTokenHash    *string    // Хэш действующего refresh-токена
	RefreshTokenExpires *time.Time // Срок действия refresh-токена
	CreatedAt           time.Time  // Время регистрации
}

// UserProfile — представление пользователя, отдаваемое наружу.
// Хэши и токены в ответы API не попадают.
type UserProfile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile собирает внешнее представление пользователя.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
