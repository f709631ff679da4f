package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PushMock struct{ mock.Mock }

func (m *PushMock) Send(token, title, body string) error {
	return m.Called(token, title, body).Error(0)
}

func newTestSender(push *PushMock) *SenderService {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return NewSenderService(push, logger)
}

func TestHandleMessage(t *testing.T) {
	t.Run("успешная доставка", func(t *testing.T) {
		push := new(PushMock)
		push.On("Send", "device-token", "Bu gün abunəlik ödənişin var", "Bu gün Netflix üçün 9.99 USD ödəniş olunacaq.").Return(nil)

		svc := newTestSender(push)
		err := svc.HandleMessage([]byte(`{"fcm_token":"device-token","title":"Bu gün abunəlik ödənişin var","body":"Bu gün Netflix üçün 9.99 USD ödəniş olunacaq."}`))

		require.NoError(t, err)
		push.AssertExpectations(t)
	})

	t.Run("некорректный JSON возвращает ошибку", func(t *testing.T) {
		push := new(PushMock)

		svc := newTestSender(push)
		err := svc.HandleMessage([]byte("not a json"))

		assert.Error(t, err)
		push.AssertNotCalled(t, "Send")
	})

	t.Run("сбой отправки проглатывается", func(t *testing.T) {
		push := new(PushMock)
		push.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("fcm unavailable"))

		svc := newTestSender(push)
		err := svc.HandleMessage([]byte(`{"fcm_token":"t","title":"a","body":"b"}`))

		assert.NoError(t, err)
	})
}
