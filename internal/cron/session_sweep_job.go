package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
)

type SessionSweepJobParams struct {
	Logger  *logger.Logger
	Sweeper sessionSweeper
}

type sessionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("session sweeper required")
	}
	return &sessionSweepJob{logg: params.Logger, sweeper: params.Sweeper}, nil
}

type sessionSweepJob struct {
	logg    *logger.Logger
	sweeper sessionSweeper
}

func (j *sessionSweepJob) Name() string { return "filter-session-sweep" }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	swept, err := j.sweeper.Sweep(ctx)
	logCtx := j.logg.WithField(ctx, "sessions_swept", swept)
	if err != nil {
		return fmt.Errorf("session sweep: %w", err)
	}
	if swept > 0 {
		j.logg.Info(logCtx, "expired filter sessions swept")
	}
	return nil
}
