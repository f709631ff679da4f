// Package services содержит бизнес-логику для управления подписками и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/unsubapp/subtracker/internal/lib/billing"
	"github.com/unsubapp/subtracker/internal/lib/sl"
	"github.com/unsubapp/subtracker/internal/models"
	"github.com/unsubapp/subtracker/internal/storage/repository"
)

var (
	// ErrNotFound — подписка с таким id не существует.
	ErrNotFound = errors.New("subscription not found")
	// ErrForbidden — подписка существует, но принадлежит другому пользователю.
	ErrForbidden = errors.New("subscription belongs to another user")
	// ErrUserNotFound — владелец для новой подписки не существует.
	ErrUserNotFound = errors.New("user not found")
)

// DateLayout — формат календарных дат платежей в запросах и ответах API.
const DateLayout = "2006-01-02"

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateEntry добавляет новую подписку и возвращает её.
	CreateEntry(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// ReadEntry возвращает подписку по ID.
	ReadEntry(ctx context.Context, id int) (*models.Subscription, error)
	// UpdateEntry обновляет данные подписки и возвращает обновлённую запись.
	UpdateEntry(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// RemoveEntry удаляет подписку по ID и возвращает количество удалённых записей.
	RemoveEntry(ctx context.Context, id int) (int, error)
	// ListEntries возвращает подписки пользователя, новые первыми.
	ListEntries(ctx context.Context, userID int) ([]*models.Subscription, error)
	// GetUser возвращает пользователя по id.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую подписку для пользователя. Дата следующего платежа
// всегда вычисляется из пары первый платёж/периодичность.
func (s *SubscriptionService) Create(ctx context.Context, userID int, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	firstDate, err := time.Parse(DateLayout, req.FirstPaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid first payment date: %w", err)
	}
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sub := models.Subscription{
		UserID:           userID,
		Name:             req.Name,
		Category:         req.Category,
		Price:            strconv.FormatFloat(req.Price, 'f', 2, 64),
		Currency:         req.Currency,
		BillingCycle:     string(cycle),
		FirstPaymentDate: firstDate,
		NextPaymentDate:  billing.NextPaymentDate(firstDate, cycle),
		IsActive:         isActive,
		Notes:            req.Notes,
	}

	created, err := s.repo.CreateEntry(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.Int("id", created.ID))

	cacheKey := fmt.Sprintf("subscription:%d", created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}

	return created, nil
}

// GetOwned возвращает подписку по id с проверкой владельца.
// Сначала проверяется существование (ErrNotFound), затем владелец
// (ErrForbidden) — различие между ними видно клиенту.
func (s *SubscriptionService) GetOwned(ctx context.Context, userID, id int) (*models.Subscription, error) {
	var cached *models.Subscription
	cacheKey := fmt.Sprintf("subscription:%d", id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		if cached.UserID != userID {
			return nil, ErrForbidden
		}
		return cached, nil
	}

	sub, err := s.repo.ReadEntry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return sub, nil
}

// List возвращает подписки пользователя, последние созданные первыми.
func (s *SubscriptionService) List(ctx context.Context, userID int) ([]*models.Subscription, error) {
	return s.repo.ListEntries(ctx, userID)
}

// Update применяет частичное обновление подписки. Пересчитывает дату
// следующего платежа только если изменилась дата первого платежа или
// периодичность; для отсутствующего из пары поля берётся сохранённое значение.
func (s *SubscriptionService) Update(ctx context.Context, userID, id int, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	sub, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstPaymentDate != nil || req.BillingCycle != nil {
		firstDate := sub.FirstPaymentDate
		if req.FirstPaymentDate != nil {
			firstDate, err = time.Parse(DateLayout, *req.FirstPaymentDate)
			if err != nil {
				return nil, fmt.Errorf("invalid first payment date: %w", err)
			}
		}
		cycleStr := sub.BillingCycle
		if req.BillingCycle != nil {
			cycleStr = *req.BillingCycle
		}
		cycle, err := billing.ParseCycle(cycleStr)
		if err != nil {
			return nil, err
		}

		sub.FirstPaymentDate = firstDate
		sub.BillingCycle = string(cycle)
		sub.NextPaymentDate = billing.NextPaymentDate(firstDate, cycle)
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Category != nil {
		sub.Category = req.Category
	}
	if req.Price != nil {
		sub.Price = strconv.FormatFloat(*req.Price, 'f', 2, 64)
	}
	if req.Currency != nil {
		sub.Currency = *req.Currency
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		sub.Notes = req.Notes
	}

	updated, err := s.repo.UpdateEntry(ctx, *sub)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}

// Remove удаляет подписку с проверкой владельца и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, userID, id int) error {
	if _, err := s.GetOwned(ctx, userID, id); err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	count, err := s.repo.RemoveEntry(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
