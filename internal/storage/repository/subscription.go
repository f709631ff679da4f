package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/unsubapp/subtracker/internal/models"
)

const subscriptionColumns = `id, user_id, name, category, price, currency, billing_cycle,
			      first_payment_date, next_payment_date, is_active, notes, created_at, updated_at`

// CreateEntry вставляет новую запись подписки и возвращает её в полном виде.
func (s *Storage) CreateEntry(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, name, category, price, currency,
			      billing_cycle, first_payment_date, next_payment_date, is_active, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.Name, sub.Category, sub.Price, sub.Currency, sub.BillingCycle,
		sub.FirstPaymentDate, sub.NextPaymentDate, sub.IsActive, sub.Notes)
	created, err := scanSubscription(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadEntry возвращает данные подписки по её ID.
func (s *Storage) ReadEntry(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.ReadEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions WHERE id = $1`
	result, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEntry обновляет данные подписки по её ID и возвращает обновлённую запись.
func (s *Storage) UpdateEntry(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpdateEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, category = $2, price = $3, currency = $4, billing_cycle = $5,
			      first_payment_date = $6, next_payment_date = $7, is_active = $8, notes = $9,
			      updated_at = now()
			  WHERE id = $10
			  RETURNING ` + subscriptionColumns
	row := s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Category, sub.Price, sub.Currency, sub.BillingCycle,
		sub.FirstPaymentDate, sub.NextPaymentDate, sub.IsActive, sub.Notes, sub.ID)
	updated, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveEntry удаляет подписку по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveEntry(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListEntries возвращает список подписок пользователя, новые записи первыми.
func (s *Storage) ListEntries(ctx context.Context, userID int) ([]*models.Subscription, error) {
	const op = "storage.ListEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindUpcomingPayments находит активные подписки с платежом в окне
// [from, to] включительно вместе с push-токеном владельца.
func (s *Storage) FindUpcomingPayments(ctx context.Context, from, to time.Time) ([]*models.ReminderEntry, error) {
	const op = "storage.FindUpcomingPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.price, s.currency, s.next_payment_date, u.fcm_token
			  FROM subscriptions s
			  JOIN users u ON u.id = s.user_id
			  WHERE s.is_active = true
			    AND s.next_payment_date BETWEEN $1 AND $2`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderEntry
	for rows.Next() {
		var entry models.ReminderEntry
		var fcmToken sql.NullString
		if err := rows.Scan(&entry.SubscriptionID, &entry.Name, &entry.Price,
			&entry.Currency, &entry.NextPaymentDate, &fcmToken); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if fcmToken.Valid {
			entry.FCMToken = &fcmToken.String
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var sub models.Subscription
	var category, notes sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Name, &category, &sub.Price,
		&sub.Currency, &sub.BillingCycle, &sub.FirstPaymentDate, &sub.NextPaymentDate,
		&sub.IsActive, &notes, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if category.Valid {
		sub.Category = &category.String
	}
	if notes.Valid {
		sub.Notes = &notes.String
	}
	return &sub, nil
}
