package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/unsubapp/subtracker/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его id
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash string, fcmToken *string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, fcm_token)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		name, email, passwordHash, fcmToken).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её id
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID int, name string, price float64,
	currency, billingCycle string, firstPaymentDate, nextPaymentDate time.Time, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(user_id, name, price, currency, billing_cycle, first_payment_date, next_payment_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		userID, name, price, currency, billingCycle, firstPaymentDate, nextPaymentDate, isActive).Scan(&id)
	require.NoError(t, err)
	return id
}

// setupTestDatabase поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище с функцией очистки.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	require.NoError(t, migrations.Run(storage.DB, "../../../migrations"))

	cleanup := func() {
		storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
