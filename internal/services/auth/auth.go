// Package services содержит логику бизнес-уровня для регистрации,
// входа и ротации refresh-токенов.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/unsubapp/subtracker/internal/lib/jwt"
	"github.com/unsubapp/subtracker/internal/lib/password"
	"github.com/unsubapp/subtracker/internal/models"
	"github.com/unsubapp/subtracker/internal/storage/repository"
)

var (
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken — refresh-токен невалиден, просрочен или не
	// совпадает с сохранённым. Детали различий клиенту не раскрываются.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает запись.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по id.
	GetUser(ctx context.Context, userID int) (*models.User, error)
	// UpdateRefreshToken сохраняет хэш refresh-токена и срок его действия.
	UpdateRefreshToken(ctx context.Context, userID int, tokenHash string, expires time.Time) error
}

// TokenPair — пара access/refresh токенов, выдаваемая клиенту.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService отвечает за регистрацию, авторизацию и ротацию токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу выдаёт
// пару токенов. Дубликат email отклоняется с ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, *TokenPair, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.CreateUser(ctx, name, email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login проверяет пароль пользователя и выдаёт новую пару токенов.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh проверяет refresh-токен (подпись, наличие пользователя, совпадение
// с сохранённым хэшем, срок действия) и ротирует пару токенов.
// Все варианты отказа сводятся к ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	claims, err := s.jwtMaker.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}
	if user.RefreshTokenHash == nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	if err := password.CompareHash(*user.RefreshTokenHash, digest(refreshToken)); err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	if user.RefreshTokenExpires != nil && user.RefreshTokenExpires.Before(time.Now()) {
		return nil, nil, ErrInvalidRefreshToken
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// issueTokens генерирует пару токенов и сохраняет хэш refresh-токена
// вместе со сроком действия — ротация происходит на каждом вызове.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.jwtMaker.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMaker.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	// bcrypt ограничен 72 байтами, поэтому хэшируется sha256-отпечаток токена.
	tokenHash, err := password.GetHash(digest(refreshToken))
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(jwt.RefreshTokenTTL)
	if err := s.users.UpdateRefreshToken(ctx, user.ID, tokenHash, expires); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
