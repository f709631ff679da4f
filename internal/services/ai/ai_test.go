package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type GeneratorMock struct{ mock.Mock }

func (m *GeneratorMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newTestAI(gen *GeneratorMock) *AIService {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return NewAIService(gen, logger)
}

func TestCancelHelp(t *testing.T) {
	ctx := context.Background()

	t.Run("пустые locale и platform получают значения по умолчанию", func(t *testing.T) {
		gen := new(GeneratorMock)
		gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return containsAll(prompt, `"Netflix"`, "Platforma: general.", "Dil: az.")
		})).Return("1. Hesabına daxil ol.", nil)

		svc := newTestAI(gen)
		text, err := svc.CancelHelp(ctx, "Netflix", "", "")

		require.NoError(t, err)
		assert.Equal(t, "1. Hesabına daxil ol.", text)
		gen.AssertExpectations(t)
	})

	t.Run("переданные locale и platform попадают в промпт", func(t *testing.T) {
		gen := new(GeneratorMock)
		gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return containsAll(prompt, "Platforma: ios.", "Dil: en.")
		})).Return("1. Open Settings.", nil)

		svc := newTestAI(gen)
		_, err := svc.CancelHelp(ctx, "Netflix", "ios", "en")

		require.NoError(t, err)
	})

	t.Run("ошибка клиента сводится к общей ошибке", func(t *testing.T) {
		gen := new(GeneratorMock)
		gen.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("api quota exceeded"))

		svc := newTestAI(gen)
		_, err := svc.CancelHelp(ctx, "Netflix", "", "")

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("пустой ответ модели считается сбоем", func(t *testing.T) {
		gen := new(GeneratorMock)
		gen.On("GenerateText", mock.Anything, mock.Anything).Return("", nil)

		svc := newTestAI(gen)
		_, err := svc.CancelHelp(ctx, "Netflix", "", "")

		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
