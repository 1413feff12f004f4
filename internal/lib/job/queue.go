package job

import (
	"context"

	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueSender hands messages to the job queue. A message counts as sent
// once it is enqueued; an enqueue failure is a delivery failure.
type QueueSender struct {
	client   enqueuer
	maxRetry int
}

func NewQueueSender(client enqueuer, maxRetry int) *QueueSender {
	return &QueueSender{client: client, maxRetry: maxRetry}
}

func (s *QueueSender) Send(ctx context.Context, msg *email.Message) error {
	task, err := NewBookingEmailTask(msg, s.maxRetry)
	if err != nil {
		return errors.Wrap(err, "failed to build booking email task")
	}

	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return errors.Wrap(err, "failed to enqueue booking email")
	}

	return nil
}
