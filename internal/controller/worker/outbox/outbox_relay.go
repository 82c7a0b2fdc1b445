package outbox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/infrastructure"
	"github.com/andreyxaxa/Image-Gallery/internal/usecase"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
)

type Config struct {
	PollInterval        time.Duration
	MarkFailedInterval  time.Duration
	CleanupInterval     time.Duration
	ProcessBatchTimeout time.Duration
	BatchSize           int
	MaxRetries          int
}

// OutboxRelay drains pending gallery events into the event bus. Events that
// keep failing past MaxRetries are parked as failed, terminal rows are
// swept on the cleanup interval.
type OutboxRelay struct {
	gallery usecase.GalleryUseCase
	es      infrastructure.EventsSender
	cfg     Config
	logger  logger.Interface

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(gallery usecase.GalleryUseCase, es infrastructure.EventsSender, l logger.Interface, cfg Config) *OutboxRelay {
	return &OutboxRelay{
		gallery: gallery,
		es:      es,
		cfg:     cfg,
		logger:  l,
	}
}

func (r *OutboxRelay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("OutboxRelay - Start - worker already started")
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	// 1. publish pending events
	r.worker(r.cfg.PollInterval, func() {
		batchCtx, batchCancel := context.WithTimeout(r.ctx, r.cfg.ProcessBatchTimeout)
		defer batchCancel()

		r.processEventsBatch(batchCtx)
	})

	// 2. park events that ran out of retries
	r.worker(r.cfg.MarkFailedInterval, func() {
		err := r.gallery.MarkMaxRetriesAsFailed(r.ctx, r.cfg.MaxRetries)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - worker - r.gallery.MarkMaxRetriesAsFailed")
		}
	})

	// 3. sweep processed/failed rows
	r.worker(r.cfg.CleanupInterval, func() {
		err := r.gallery.CleanupOutbox(r.ctx)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - worker - r.gallery.CleanupOutbox")
		}
	})

	return nil
}

func (r *OutboxRelay) processEventsBatch(ctx context.Context) {
	events, err := r.gallery.GetPendingEvents(ctx, r.cfg.MaxRetries, r.cfg.BatchSize)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.gallery.GetPendingEvents")

		return
	}
	if len(events) == 0 {
		return
	}

	err = r.gallery.MarkAsProcessingBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.gallery.MarkAsProcessingBatch")

		return
	}

	err = r.es.SendEvents(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.es.SendEvents")
		// back to pending with a bumped retry count
		incErr := r.gallery.IncrementRetryCountBatch(ctx, events)
		if incErr != nil {
			r.logger.Error(incErr, "OutboxRelay - processEventsBatch - r.gallery.IncrementRetryCountBatch")
		}
		return
	}

	err = r.gallery.MarkAsProcessedBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.gallery.MarkAsProcessedBatch")
	}
}

func (r *OutboxRelay) worker(interval time.Duration, task func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (r *OutboxRelay) Shutdown(ctx context.Context) error {
	if !r.started.Load() {
		return nil
	}

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})

	go func() {
		r.wg.Wait()

		if err := r.es.Close(); err != nil {
			r.logger.Error(err, "OutboxRelay - Shutdown - r.es.Close")
		}

		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
