package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unsubapp/subtracker/internal/models"
)

type ReminderRepoMock struct{ mock.Mock }

func (m *ReminderRepoMock) FindUpcomingPayments(ctx context.Context, from, to time.Time) ([]*models.ReminderEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReminderEntry), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(message any) error {
	return m.Called(message).Error(0)
}

func newTestScheduler(repo *ReminderRepoMock, pub *PublisherMock) *SchedulerService {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return NewSchedulerService(repo, pub, logger, 9)
}

func strptr(s string) *string { return &s }

func TestBuildReminder(t *testing.T) {
	today := time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC)
	entry := func(days int) *models.ReminderEntry {
		return &models.ReminderEntry{
			SubscriptionID:  1,
			Name:            "Netflix",
			Price:           "9.99",
			Currency:        "USD",
			NextPaymentDate: today.AddDate(0, 0, days),
			FCMToken:        strptr("device-token"),
		}
	}

	tests := []struct {
		name      string
		daysAhead int
		wantOK    bool
		wantTitle string
		wantBody  string
	}{
		{
			name:      "платёж сегодня",
			daysAhead: 0,
			wantOK:    true,
			wantTitle: "Bu gün abunəlik ödənişin var",
			wantBody:  "Bu gün Netflix üçün 9.99 USD ödəniş olunacaq.",
		},
		{
			name:      "платёж завтра",
			daysAhead: 1,
			wantOK:    true,
			wantTitle: "Sabah abunəlik ödənişin var",
			wantBody:  "Sabah Netflix üçün 9.99 USD ödəniş olunacaq.",
		},
		{
			name:      "платёж через два дня пропускается",
			daysAhead: 2,
			wantOK:    false,
		},
		{
			name:      "платёж через три дня",
			daysAhead: 3,
			wantOK:    true,
			wantTitle: "3 gün sonra abunəlik ödənişin var",
			wantBody:  "3 gün sonra Netflix üçün 9.99 USD ödəniş olunacaq.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := BuildReminder(entry(tt.daysAhead), today)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTitle, msg.Title)
				assert.Equal(t, tt.wantBody, msg.Body)
				assert.Equal(t, "device-token", msg.FCMToken)
			}
		})
	}
}

func TestBuildReminderPriceFormatting(t *testing.T) {
	today := time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC)

	t.Run("цена дополняется до двух знаков", func(t *testing.T) {
		msg, ok := BuildReminder(&models.ReminderEntry{
			Name: "Spotify", Price: "5", Currency: "EUR",
			NextPaymentDate: today, FCMToken: strptr("token"),
		}, today)
		require.True(t, ok)
		assert.Contains(t, msg.Body, "5.00 EUR")
	})

	t.Run("нечисловая цена уходит как есть", func(t *testing.T) {
		msg, ok := BuildReminder(&models.ReminderEntry{
			Name: "Spotify", Price: "N/A", Currency: "EUR",
			NextPaymentDate: today, FCMToken: strptr("token"),
		}, today)
		require.True(t, ok)
		assert.Contains(t, msg.Body, "N/A EUR")
	})
}

func TestScanOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("окно выборки и публикация напоминаний", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		pub := new(PublisherMock)

		repo.On("FindUpcomingPayments", mock.Anything, mock.MatchedBy(func(from time.Time) bool {
			return from.Hour() == 0 && from.Minute() == 0
		}), mock.MatchedBy(func(to time.Time) bool {
			return true
		})).Return([]*models.ReminderEntry{
			{SubscriptionID: 1, Name: "Netflix", Price: "9.99", Currency: "USD",
				NextPaymentDate: time.Now(), FCMToken: strptr("token-1")},
			{SubscriptionID: 2, Name: "Spotify", Price: "5.00", Currency: "EUR",
				NextPaymentDate: time.Now(), FCMToken: nil},
		}, nil)
		pub.On("Publish", mock.MatchedBy(func(msg models.ReminderMessage) bool {
			return msg.FCMToken == "token-1"
		})).Return(nil).Once()

		svc := newTestScheduler(repo, pub)
		err := svc.ScanOnce(ctx)

		require.NoError(t, err)
		pub.AssertExpectations(t)
	})

	t.Run("ошибка публикации не прерывает обход", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		pub := new(PublisherMock)

		repo.On("FindUpcomingPayments", mock.Anything, mock.Anything, mock.Anything).
			Return([]*models.ReminderEntry{
				{SubscriptionID: 1, Name: "Netflix", Price: "9.99", Currency: "USD",
					NextPaymentDate: time.Now(), FCMToken: strptr("token-1")},
				{SubscriptionID: 2, Name: "Spotify", Price: "5.00", Currency: "EUR",
					NextPaymentDate: time.Now(), FCMToken: strptr("token-2")},
			}, nil)
		pub.On("Publish", mock.Anything).Return(errors.New("broker unavailable")).Once()
		pub.On("Publish", mock.Anything).Return(nil).Once()

		svc := newTestScheduler(repo, pub)
		err := svc.ScanOnce(ctx)

		require.NoError(t, err)
		pub.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("ошибка выборки возвращается наверх", func(t *testing.T) {
		repo := new(ReminderRepoMock)
		pub := new(PublisherMock)
		repo.On("FindUpcomingPayments", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("database error"))

		svc := newTestScheduler(repo, pub)
		err := svc.ScanOnce(ctx)

		assert.Error(t, err)
		pub.AssertNotCalled(t, "Publish")
	})
}

func TestDiffInDays(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "одинаковые даты",
			a:    time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "время суток не учитывается",
			a:    time.Date(2025, 11, 17, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 11, 16, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "разница через границу месяца",
			a:    time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diffInDays(tt.a, tt.b))
		})
	}
}

func TestNextRunAt(t *testing.T) {
	t.Run("час ещё впереди", func(t *testing.T) {
		now := time.Date(2025, 11, 16, 7, 30, 0, 0, time.UTC)
		next := nextRunAt(now, 9)
		assert.Equal(t, time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("час уже прошёл, запуск завтра", func(t *testing.T) {
		now := time.Date(2025, 11, 16, 10, 0, 0, 0, time.UTC)
		next := nextRunAt(now, 9)
		assert.Equal(t, time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC), next)
	})
}
