package worker

import (
	"context"
	"encoding/json"

	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/notify"
	"github.com/concho-nutrition/storefront/internal/provider"
	"github.com/concho-nutrition/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles async tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderWebhook, c.handleOrderWebhook)
}

// handleOrderWebhook delivers the best-effort order notification. The
// task is enqueued with no retries, so every failure path logs and
// returns nil.
func (c *Consumer) handleOrderWebhook(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_webhook_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderWebhookPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_webhook_unmarshal_failed", "error", err)
		return nil
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_webhook_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderWebhook == nil || !c.OrderWebhook.Enabled() {
		logger.Debugw("worker_order_webhook_skip_disabled", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_webhook_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return nil
	}
	if order == nil {
		logger.Debugw("worker_order_webhook_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderWebhook.Send(ctx, notify.BuildPayload(order)); err != nil {
		logger.Warnw("worker_order_webhook_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil
	}
	return nil
}
