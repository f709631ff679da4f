package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unsubapp/subtracker/internal/models"
	authservice "github.com/unsubapp/subtracker/internal/services/auth"
)

// ServiceMock реализует интерфейс register.Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, name, email, password string) (*models.User, *authservice.TokenPair, error) {
	args := m.Called(ctx, name, email, password)
	var user *models.User
	if res := args.Get(0); res != nil {
		user = res.(*models.User)
	}
	var tokens *authservice.TokenPair
	if res := args.Get(1); res != nil {
		tokens = res.(*authservice.TokenPair)
	}
	return user, tokens, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 1, Name: "user1", Email: "user1@example.com"}
	tokens := &authservice.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantMessage    string
		wantDataCheck  func(*testing.T, map[string]any)
	}{
		{
			name: "успешная регистрация",
			requestBody: Request{
				Name:     "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(user, tokens, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantMessage:    "User registered successfully",
			wantDataCheck: func(t *testing.T, data map[string]any) {
				assert.Equal(t, "access-token", data["accessToken"])
				assert.Equal(t, "refresh-token", data["refreshToken"])
				profile, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "user1@example.com", profile["email"])
			},
		},
		{
			name:           "некорректный JSON в теле запроса",
			requestBody:    "not a json",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name: "ошибка валидации - нет пароля",
			requestBody: Request{
				Name:  "user1",
				Email: "user1@example.com",
			},
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Password is a required field",
		},
		{
			name: "email уже зарегистрирован",
			requestBody: Request{
				Name:     "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(nil, nil, authservice.ErrEmailTaken).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "email already registered",
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Name:     "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return(nil, nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, float64(tt.wantStatusCode), got["statusCode"])
			assert.Equal(t, tt.wantMessage, got["message"])
			assert.NotEmpty(t, got["timestamp"])

			if tt.wantDataCheck != nil {
				assert.Equal(t, true, got["success"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				tt.wantDataCheck(t, data)
			} else {
				assert.Equal(t, false, got["success"])
				assert.Nil(t, got["data"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
