package rabbitmq

// NotificationsExchange direct-обменник, через который планировщик передает задания отправителю.
const NotificationsExchange = "notifications"

// Ключи маршрутизации уведомлений
const (
	RoutingKeyTrial    = "trial"
	RoutingKeyReminder = "reminder"
)

// Очереди воркера-отправителя
const (
	QueueTrial    = "notification.trial"
	QueueReminder = "notification.reminder"
)

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди воркера-отправителя.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueTrial, RoutingKey: RoutingKeyTrial},
		{QueueName: QueueReminder, RoutingKey: RoutingKeyReminder},
	}
}
