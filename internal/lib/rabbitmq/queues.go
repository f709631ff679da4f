package rabbitmq

const (
	// ReminderExchange — exchange конвейера напоминаний.
	ReminderExchange = "reminders"
	// ReminderQueue — очередь напоминаний о предстоящих платежах.
	ReminderQueue = "reminder.upcoming"
	// ReminderRoutingKey — routing key очереди напоминаний.
	ReminderRoutingKey = "upcoming"
)

// QueueConfig описывает очередь и её routing key.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди конвейера напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ReminderQueue, RoutingKey: ReminderRoutingKey},
	}
}
