// Package services содержит сканер предстоящих платежей: раз в сутки
// выбирает подписки с платежом в ближайшие дни и публикует напоминания
// в очередь для отправки push-уведомлений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/unsubapp/subtracker/internal/lib/sl"
	"github.com/unsubapp/subtracker/internal/models"
)

// ReminderWindowDays — горизонт сканера: платежи от сегодня до
// сегодня + 3 дня включительно.
const ReminderWindowDays = 3

// ReminderRepository описывает выборку подписок с предстоящими платежами.
type ReminderRepository interface {
	FindUpcomingPayments(ctx context.Context, from, to time.Time) ([]*models.ReminderEntry, error)
}

// Publisher публикует сообщение-напоминание в очередь.
type Publisher interface {
	Publish(message any) error
}

// SchedulerService раз в сутки сканирует предстоящие платежи
// и публикует напоминания.
type SchedulerService struct {
	repo      ReminderRepository
	publisher Publisher
	log       *slog.Logger
	hour      int
}

// NewSchedulerService создает новый экземпляр SchedulerService.
// hour — час суток (0-23), в который запускается сканирование.
func NewSchedulerService(repo ReminderRepository, publisher Publisher, log *slog.Logger, hour int) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		hour:      hour,
	}
}

// Run запускает ежедневный цикл сканирования и блокируется до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context) {
	for {
		next := nextRunAt(time.Now(), s.hour)
		s.log.Info("next reminder scan scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-time.After(time.Until(next)):
		}

		if err := s.ScanOnce(ctx); err != nil {
			s.log.Error("reminder scan failed", sl.Err(err))
		}
	}
}

// ScanOnce выполняет одно сканирование: выбирает активные подписки с платежом
// в окне [сегодня, сегодня+3 дня] и публикует напоминание по каждой.
// Сбой на отдельной подписке логируется и не прерывает обход.
func (s *SchedulerService) ScanOnce(ctx context.Context) error {
	today := midnight(time.Now())
	until := today.AddDate(0, 0, ReminderWindowDays)

	entries, err := s.repo.FindUpcomingPayments(ctx, today, until)
	if err != nil {
		return fmt.Errorf("find upcoming payments: %w", err)
	}
	s.log.Info("found subscriptions with upcoming payments",
		slog.Int("count", len(entries)))

	for _, entry := range entries {
		if entry.FCMToken == nil || *entry.FCMToken == "" {
			continue
		}

		msg, ok := BuildReminder(entry, today)
		if !ok {
			continue
		}
		if err := s.publisher.Publish(msg); err != nil {
			s.log.Error("failed to publish reminder",
				slog.Int("subscription_id", entry.SubscriptionID), sl.Err(err))
			continue
		}
		s.log.Info("published reminder",
			slog.Int("subscription_id", entry.SubscriptionID),
			slog.String("name", entry.Name))
	}
	return nil
}

// BuildReminder формирует текст напоминания по числу дней до платежа.
// Тексты есть только для 0, 1 и 3 дней; для остальных значений
// возвращается ok=false и уведомление не отправляется.
func BuildReminder(entry *models.ReminderEntry, today time.Time) (models.ReminderMessage, bool) {
	daysLeft := diffInDays(entry.NextPaymentDate, today)
	priceText := formatPrice(entry.Price)

	var title, body string
	switch daysLeft {
	case 3:
		title = "3 gün sonra abunəlik ödənişin var"
		body = fmt.Sprintf("3 gün sonra %s üçün %s %s ödəniş olunacaq.",
			entry.Name, priceText, entry.Currency)
	case 1:
		title = "Sabah abunəlik ödənişin var"
		body = fmt.Sprintf("Sabah %s üçün %s %s ödəniş olunacaq.",
			entry.Name, priceText, entry.Currency)
	case 0:
		title = "Bu gün abunəlik ödənişin var"
		body = fmt.Sprintf("Bu gün %s üçün %s %s ödəniş olunacaq.",
			entry.Name, priceText, entry.Currency)
	default:
		return models.ReminderMessage{}, false
	}

	return models.ReminderMessage{
		FCMToken: *entry.FCMToken,
		Title:    title,
		Body:     body,
	}, true
}

// formatPrice приводит цену к двум знакам после запятой; нечисловое
// значение возвращается как есть.
func formatPrice(price string) string {
	value, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return price
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// midnight отбрасывает время, оставляя только календарную дату.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// diffInDays возвращает разницу в календарных днях между датами,
// без учёта времени суток и часовых поясов.
func diffInDays(a, b time.Time) int {
	utcA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	utcB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(utcA.Sub(utcB).Hours() / 24)
}

// nextRunAt возвращает ближайший момент запуска в час hour:
// сегодня, если он ещё впереди, иначе завтра.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
