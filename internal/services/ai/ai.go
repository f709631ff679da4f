// Package services строит запрос к языковой модели для подсказок
// по отмене подписки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unsubapp/subtracker/internal/lib/sl"
)

// ErrGenerationFailed — единая ошибка для клиента при любом сбое генерации.
// Детали сбоя остаются в логах.
var ErrGenerationFailed = errors.New("cancel help generation failed")

// TextGenerator описывает контракт клиента языковой модели.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AIService формирует промпт и возвращает инструкцию по отмене подписки.
type AIService struct {
	generator TextGenerator
	log       *slog.Logger
}

// NewAIService создает новый экземпляр AIService.
func NewAIService(generator TextGenerator, log *slog.Logger) *AIService {
	return &AIService{
		generator: generator,
		log:       log,
	}
}

// CancelHelp возвращает пошаговую инструкцию по отмене подписки
// subscriptionName. Пустые locale и platform получают значения по умолчанию.
func (s *AIService) CancelHelp(ctx context.Context, subscriptionName, platform, locale string) (string, error) {
	if locale == "" {
		locale = "az"
	}
	if platform == "" {
		platform = "general"
	}

	prompt := buildCancelPrompt(subscriptionName, platform, locale)

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.log.Error("cancel help generation failed", sl.Err(err))
		return "", ErrGenerationFailed
	}
	if text == "" {
		s.log.Error("cancel help generation returned empty text")
		return "", ErrGenerationFailed
	}
	return text, nil
}

func buildCancelPrompt(subscriptionName, platform, locale string) string {
	prompt := fmt.Sprintf(`
Sən "subscription ləğvetmə assistenti"sən.

İstifadəçinin xidməti: %q.
Platforma: %s.

Vəzifən:
- Bu xidmətin ləğvi üçün addım-addım təlimat yaz.
- Üslub: Suala cavab verən app-in içində sadə mətn kimi göstəriləcək.
- Addımları nömrələnmiş şəkildə ver (1., 2., 3. ...).
- Çox uzun olmasın, amma dəqiq olsun.
- Mümkünsə Azərbaycan dilində cavab ver.
- Əgər xidmətlə bağlı dəqiq məlumatın yoxdursa, bunu de və ümumi təklif ver:
  - "Hesab -> Subscriptions / Abunəliklər" bölməsinə bax
  - Email-lərdə "unsubscribe" linkinə kliklə, və s.

Yalnız təlimatları yaz, intro və outro yazma.
Dil: %s.`, subscriptionName, platform, locale)
	return strings.TrimSpace(prompt)
}
