package models

import "time"

// ReminderEntry — строка выборки сканера напоминаний: активная подписка
// с платежом в окне ближайших дней вместе с push-токеном владельца.
type ReminderEntry struct {
	SubscriptionID  int
	Name            string
	Price           string
	Currency        string
	NextPaymentDate time.Time
	FCMToken        *string
}

// ReminderMessage — сообщение о предстоящем платеже, публикуемое в очередь
// и доставляемое пользователю push-уведомлением.
type ReminderMessage struct {
	FCMToken string `json:"fcm_token"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}
