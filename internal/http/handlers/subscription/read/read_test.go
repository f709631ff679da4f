package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unsubapp/subtracker/internal/http/middlewarectx"
	"github.com/unsubapp/subtracker/internal/models"
	subservice "github.com/unsubapp/subtracker/internal/services/subscription"
)

// ServiceMock реализует интерфейс read.Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetOwned(ctx context.Context, userID, id int) (*models.Subscription, error) {
	args := m.Called(ctx, userID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestReadHandler(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		userID         int
		withUser       bool
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantMessage    string
		wantData       bool
	}{
		{
			name:     "успешное чтение подписки",
			idParam:  "123",
			userID:   7,
			withUser: true,
			setupMock: func(m *ServiceMock) {
				sub := &models.Subscription{
					ID:              123,
					UserID:          7,
					Name:            "Netflix",
					Price:           "9.99",
					Currency:        "USD",
					BillingCycle:    "MONTHLY",
					NextPaymentDate: time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
					IsActive:        true,
				}
				m.On("GetOwned", mock.Anything, 7, 123).Return(sub, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Subscription loaded",
			wantData:       true,
		},
		{
			name:           "некорректный id в URL",
			idParam:        "abc",
			userID:         7,
			withUser:       true,
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid subscription id",
		},
		{
			name:           "нет пользователя в контексте",
			idParam:        "123",
			withUser:       false,
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "unauthorized",
		},
		{
			name:     "подписка не найдена",
			idParam:  "777",
			userID:   7,
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetOwned", mock.Anything, 7, 777).Return(nil, subservice.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "subscription not found",
		},
		{
			name:     "подписка другого пользователя",
			idParam:  "123",
			userID:   7,
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetOwned", mock.Anything, 7, 123).Return(nil, subservice.ErrForbidden).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantMessage:    "access to this subscription is denied",
		},
		{
			name:     "ошибка сервиса",
			idParam:  "123",
			userID:   7,
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetOwned", mock.Anything, 7, 123).Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "could not read subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+tt.idParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantMessage, got["message"])
			assert.Equal(t, float64(tt.wantStatusCode), got["statusCode"])

			if tt.wantData {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "Netflix", data["name"])
				assert.Equal(t, float64(7), data["userId"])
			} else {
				assert.Nil(t, got["data"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
