// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// Поле Price хранится строкой, как её возвращает колонка NUMERIC(10,2),
// чтобы не терять точность десятичной цены.
type Subscription struct {
	ID               int       `json:"id"`                // Идентификатор подписки
	UserID           int       `json:"userId"`            // Идентификатор владельца
	Name             string    `json:"name"`              // Название сервиса (Netflix, Spotify...)
	Category         *string   `json:"category"`          // Категория (nil — не указана)
	Price            string    `json:"price"`             // Цена за период, десятичная строка
	Currency         string    `json:"currency"`          // Трёхбуквенный код валюты
	BillingCycle     string    `json:"billingCycle"`      // DAILY/WEEKLY/MONTHLY/YEARLY
	FirstPaymentDate time.Time `json:"firstPaymentDate"`  // Дата первого платежа
	NextPaymentDate  time.Time `json:"nextPaymentDate"`   // Дата следующего платежа (производная)
	IsActive         bool      `json:"isActive"`          // Активна ли подписка
	Notes            *string   `json:"notes"`             // Заметки (nil — нет)
	CreatedAt        time.Time `json:"createdAt"`         // Время создания записи
	UpdatedAt        time.Time `json:"updatedAt"`         // Время последнего обновления
}

// CreateSubscriptionRequest используется для приёма данных из JSON-запроса
// на создание подписки. Дата приходит строкой в формате 2006-01-02.
type CreateSubscriptionRequest struct {
	Name             string  `json:"name" validate:"required,max=100"`
	Category         *string `json:"category" validate:"omitempty,max=50"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Currency         string  `json:"currency" validate:"required,len=3"`
	BillingCycle     string  `json:"billingCycle" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	FirstPaymentDate string  `json:"firstPaymentDate" validate:"required,datetime=2006-01-02"`
	IsActive         *bool   `json:"isActive"` // nil — подписка активна по умолчанию
	Notes            *string `json:"notes"`
}

// UpdateSubscriptionRequest используется для частичного обновления подписки.
// Каждое поле — указатель: nil означает "поле не прислано, не менять".
type UpdateSubscriptionRequest struct {
	Name             *string  `json:"name" validate:"omitempty,max=100"`
	Category         *string  `json:"category" validate:"omitempty,max=50"`
	Price            *float64 `json:"price" validate:"omitempty,gt=0"`
	Currency         *string  `json:"currency" validate:"omitempty,len=3"`
	BillingCycle     *string  `json:"billingCycle" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	FirstPaymentDate *string  `json:"firstPaymentDate" validate:"omitempty,datetime=2006-01-02"`
	IsActive         *bool    `json:"isActive"`
	Notes            *string  `json:"notes"`
}
