// Package worker runs scheduled maintenance jobs.
package worker

import (
	"context"
	"log/slog"

	"sokoni/config"
	"sokoni/internal/delivery"
	"sokoni/internal/domain/lifecycle"
	"sokoni/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// ServerParams holds dependencies for the maintenance worker
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	SessionRepo repository.SessionRepository
}

type workerServer struct {
	cfg         *config.Config
	logger      *slog.Logger
	scheduler   *cron.Cron
	sessionRepo repository.SessionRepository
	done        chan struct{}
}

// NewServer creates the cron-based maintenance worker. Its only job prunes
// expired identity sessions on the configured schedule.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		cfg:         params.Cfg,
		logger:      params.Logger,
		scheduler:   cron.New(),
		sessionRepo: params.SessionRepo,
		done:        make(chan struct{}),
	}

	spec := params.Cfg.Maintenance.SessionCleanupSpec
	if _, err := srv.scheduler.AddFunc(spec, srv.cleanupExpiredSessions); err != nil {
		return nil, errors.Wrapf(err, "invalid session cleanup spec %q", spec)
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the scheduler and blocks until the worker is stopped.
func (s *workerServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting maintenance worker",
		slog.String("sessionCleanupSpec", s.cfg.Maintenance.SessionCleanupSpec),
	)
	s.scheduler.Start()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-s.done:
		return nil
	}
}

func (s *workerServer) cleanupExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	deleted, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("Expired session cleanup failed", slog.String("error", err.Error()))

		return
	}

	if deleted > 0 {
		s.logger.Info("Expired sessions pruned", slog.Int64("deleted", deleted))
	}
}

// stop halts the scheduler and waits for a running job to finish.
func (s *workerServer) stop(ctx context.Context) error {
	s.logger.Info("Shutting down maintenance worker")

	stopCtx := s.scheduler.Stop()
	close(s.done)

	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
