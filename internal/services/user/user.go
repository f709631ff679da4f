// Package services содержит бизнес-логику работы с профилем пользователя.
package services

import (
	"context"
	"errors"

	"github.com/unsubapp/subtracker/internal/models"
	"github.com/unsubapp/subtracker/internal/storage/repository"
)

// ErrNotFound — пользователь не существует.
var ErrNotFound = errors.New("user not found")

// UserRepository описывает контракт хранилища для операций профиля.
type UserRepository interface {
	GetUser(ctx context.Context, userID int) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID int, fcmToken string) (int, error)
}

// UserService отдаёт профиль пользователя и обновляет push-токен устройства.
type UserService struct {
	repo UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetMe возвращает профиль текущего пользователя.
func (s *UserService) GetMe(ctx context.Context, userID int) (*models.UserProfile, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateFCMToken регистрирует push-токен устройства текущего пользователя.
func (s *UserService) UpdateFCMToken(ctx context.Context, userID int, fcmToken string) error {
	count, err := s.repo.UpdateFCMToken(ctx, userID, fcmToken)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
