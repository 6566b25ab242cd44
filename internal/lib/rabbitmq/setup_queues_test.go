package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotificationQueues(t *testing.T) {
	queues := GetNotificationQueues()
	require.Len(t, queues, 2)

	keys := map[string]string{}
	for _, q := range queues {
		_, dup := keys[q.QueueName]
		assert.Falsef(t, dup, "duplicate queue name: %s", q.QueueName)
		keys[q.QueueName] = q.RoutingKey
	}
	assert.Equal(t, RoutingKeyTrial, keys["notification.trial"])
	assert.Equal(t, RoutingKeyReminder, keys["notification.reminder"])
}
