package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/hibiken/asynq"
)

// handleBookingEmailTask delivers a queued booking notification.
// Returning an error lets Asynq retry or archive the task.
func (j *JobService) handleBookingEmailTask(ctx context.Context, t *asynq.Task) error {
	var msg email.Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return fmt.Errorf("failed to unmarshal booking email payload: %v: %w", err, asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)
	retry, _ := asynq.GetRetryCount(ctx)

	if err := j.sender.Send(ctx, &msg); err != nil {
		j.logger.Error().
			Str("type", "booking").
			Str("task_id", taskID).
			Int("retry", retry).
			Err(err).
			Msg("Failed to send booking email")
		return err
	}

	j.logger.Info().
		Str("type", "booking").
		Str("task_id", taskID).
		Msg("Successfully sent booking email")

	return nil
}
