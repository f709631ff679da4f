// Package services доставляет напоминания из очереди
// push-уведомлениями через FCM.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/unsubapp/subtracker/internal/lib/sl"
	"github.com/unsubapp/subtracker/internal/models"
)

// PushSender описывает контракт клиента push-уведомлений.
type PushSender interface {
	Send(token, title, body string) error
}

// SenderService обрабатывает сообщения очереди напоминаний.
type SenderService struct {
	push PushSender
	log  *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(push PushSender, log *slog.Logger) *SenderService {
	return &SenderService{
		push: push,
		log:  log,
	}
}

// HandleMessage разбирает сообщение очереди и отправляет push-уведомление.
// Ошибка отправки логируется и не возвращается наверх: доставка
// best-effort, сообщение не переотправляется.
func (s *SenderService) HandleMessage(body []byte) error {
	var msg models.ReminderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal reminder message: %w", err)
	}

	if err := s.push.Send(msg.FCMToken, msg.Title, msg.Body); err != nil {
		s.log.Error("failed to send push notification", sl.Err(err))
		return nil
	}
	s.log.Info("sent push notification", slog.String("title", msg.Title))
	return nil
}
