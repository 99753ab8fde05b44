package tasks

import (
	"encoding/json"

	"facilitybot/models"

	"github.com/hibiken/asynq"
)

const TypeChannelUpdate = "channel:update"

// NewChannelUpdateTask queues one broadcast-channel announcement. Delivery
// is asynchronous so a slow or failing channel post never delays the user's
// booking confirmation.
func NewChannelUpdateTask(payload models.ChannelUpdatePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeChannelUpdate, b), nil
}
