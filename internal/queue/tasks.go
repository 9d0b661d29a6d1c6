package queue

import (
	"encoding/json"

	"github.com/concho-nutrition/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderWebhook is the best-effort order notification task.
const TaskOrderWebhook = constants.TaskOrderWebhook

// OrderWebhookPayload is the order webhook task payload.
type OrderWebhookPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderWebhookTask creates an order webhook task.
func NewOrderWebhookTask(payload OrderWebhookPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderWebhook, body), nil
}
