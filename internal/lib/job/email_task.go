package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/hibiken/asynq"
)

const (
	// TaskBookingEmail is the job type name stored in Redis.
	TaskBookingEmail = "email:booking"

	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NewBookingEmailTask wraps a composed message in an Asynq task.
//
// maxRetry 0 means a failed delivery is archived, not retried.
func NewBookingEmailTask(msg *email.Message, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookingEmail,
		payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	), nil
}
