package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unsubapp/subtracker/internal/models"
)

// ErrEmailExists возвращается при попытке зарегистрировать занятый email.
var ErrEmailExists = errors.New("email already registered")

const userColumns = `id, name, email, password_hash, fcm_token,
			      refresh_token_hash, refresh_token_expires, created_at`

// CreateUser сохраняет нового пользователя в базу данных и возвращает запись.
func (s *Storage) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query, name, email, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его id.
func (s *Storage) GetUser(ctx context.Context, userID int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateFCMToken сохраняет push-токен устройства пользователя и возвращает
// количество изменённых строк.
func (s *Storage) UpdateFCMToken(ctx context.Context, userID int, fcmToken string) (int, error) {
	const op = "storage.UpdateFCMToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET fcm_token = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, fcmToken, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateRefreshToken сохраняет хэш нового refresh-токена и срок его действия.
// Токен ротируется при каждой регистрации, входе и обновлении пары токенов.
func (s *Storage) UpdateRefreshToken(ctx context.Context, userID int, tokenHash string, expires time.Time) error {
	const op = "storage.UpdateRefreshToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET refresh_token_hash = $1,
			      refresh_token_expires = $2
			  WHERE id = $3`
	_, err := s.DB.ExecContext(ctx, query, tokenHash, expires, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var fcmToken, refreshTokenHash sql.NullString
	var refreshTokenExpires sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&fcmToken, &refreshTokenHash, &refreshTokenExpires, &u.CreatedAt); err != nil {
		return nil, err
	}
	if fcmToken.Valid {
		u.FCMToken = &fcmToken.String
	}
	if refreshTokenHash.Valid {
		u.RefreshTokenHash = &refreshTokenHash.String
	}
	if refreshTokenExpires.Valid {
		u.RefreshTokenExpires = &refreshTokenExpires.Time
	}
	return u, nil
}
