// Package server composes the application's dependencies and owns their
// lifecycle.
//
// What gets built depends on config:
//   - a Redis client when redis.address is set
//   - a PostgreSQL pool (and migrations) for the postgres session driver
//   - the Asynq job service for queued email delivery
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/valeria-photo/internal/config"
	"github.com/deppfellow/valeria-photo/internal/database"
	"github.com/deppfellow/valeria-photo/internal/lib/email"
	"github.com/deppfellow/valeria-photo/internal/lib/job"
	"github.com/deppfellow/valeria-photo/internal/repository"
	"github.com/deppfellow/valeria-photo/internal/session"
	"github.com/deppfellow/valeria-photo/internal/sqlerr"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/valeria-photo/internal/logger"
)

// sweepInterval is how often expired sessions are purged.
const sweepInterval = 10 * time.Minute

// Server is the application container that holds shared resources.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is nil unless the postgres session driver is selected.
	DB *database.Database

	// Redis is nil unless redis.address is set.
	Redis *redis.Client

	// Job is nil unless email.delivery is "queue".
	Job *job.JobService

	Sessions *session.Manager

	// Mailer delivers booking notifications, directly or via the queue.
	Mailer email.Sender

	httpServer *http.Server
	stopSweep  context.CancelFunc
}

// New constructs a Server and initializes the configured dependencies.
// It does not start the HTTP server.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Redis.Address != "" {
		s.Redis = newRedisClient(cfg, logger, loggerService)
	}

	store, err := s.newSessionStore()
	if err != nil {
		s.closeResources()
		return nil, err
	}
	s.Sessions = session.NewManager(store, session.ManagerConfig{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.SecureCookie,
	})

	direct, err := email.NewSender(&cfg.Email, logger)
	if err != nil {
		s.closeResources()
		return nil, err
	}
	s.Mailer = direct

	if cfg.Email.Delivery == config.DeliveryQueue {
		s.Job = job.NewJobService(logger, cfg, direct)
		if err := s.Job.Start(); err != nil {
			s.closeResources()
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		s.Mailer = s.Job.Sender()
	}

	return s, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	// Connections are lazy; Ping below only reports.
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Not fatal: the session middleware and health check surface outages.
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	return client
}

func (s *Server) newSessionStore() (session.Store, error) {
	cfg := s.Config

	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		return session.NewRedisStore(s.Redis), nil

	case config.SessionDriverPostgres:
		if err := database.Migrate(context.Background(), s.Logger, cfg); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		db, err := database.New(cfg, s.Logger, s.LoggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db

		sessions := repository.NewRepositories(db).Sessions
		s.startSweeper(func(ctx context.Context) {
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				s.Logger.Warn().
					Err(err).
					Str("sql_code", string(sqlerr.ErrCode(err))).
					Bool("transient", sqlerr.Transient(err)).
					Msg("failed to delete expired sessions")
				return
			}
			s.Logger.Debug().Int64("deleted", n).Msg("expired sessions deleted")
		})
		return sessions, nil

	default:
		store := session.NewMemoryStore()
		s.startSweeper(func(context.Context) {
			store.Sweep()
		})
		return store, nil
	}
}

func (s *Server) startSweeper(sweep func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopSweep = cancel

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep(ctx)
			}
		}
	}()
}

// SetupHTTPServer configures the net/http server around handler.
// Config timeouts are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("session_driver", s.Config.Session.Driver).
		Str("email_delivery", s.Config.Email.Delivery).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases every dependency.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown HTTP server: %w", shutdownErr)
		}
	}

	s.closeResources()
	return err
}

func (s *Server) closeResources() {
	if s.Job != nil {
		s.Job.Stop()
	}

	if s.stopSweep != nil {
		s.stopSweep()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close database connection")
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close redis client")
		}
	}
}
