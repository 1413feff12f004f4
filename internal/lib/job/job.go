// Package job provides background email delivery using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - QueueSender enqueues composed messages (producer).
//   - JobService runs the workers that hand them to the real sender (consumer).
package job

import (
	"github.com/deppfellow/valeria-photo/internal/config"
	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server

	// sender delivers messages picked up by the workers.
	sender email.Sender

	maxRetry int
	logger   *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
// Workers deliver through sender.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, sender email.Sender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	// Booking notifications go to "critical"; weights split the workers
	// roughly 6/3/1 when all queues are busy.
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client:   client,
		server:   server,
		sender:   sender,
		maxRetry: cfg.Email.QueueMaxRetry,
		logger:   logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookingEmail, j.handleBookingEmailTask)
	return mux
}

// Start launches the workers. It returns once they are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return err
	}

	return nil
}

// Stop waits for in-flight tasks and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// Sender returns an email.Sender that enqueues onto this service.
func (j *JobService) Sender() *QueueSender {
	return NewQueueSender(j.Client, j.maxRetry)
}
