package poi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/worker"
)

// Source yields raw POIs to be enriched and indexed, e.g. a queue.Queue's
// consumer channel.
type Source interface {
	Consume(ctx context.Context, group, consumer string) <-chan RawPoi
	EnsureGroup(ctx context.Context, group string) error
}

// PipelineWorker runs a Pipeline against a continuous Source as a managed
// background worker (spec §4.5, §5: the enrichment pipeline is the only
// background process in this system).
type PipelineWorker struct {
	*worker.BaseWorker

	pipeline *Pipeline
	source   Source
	consumer string
}

// NewPipelineWorker builds a PipelineWorker reading from source's group
// under the given consumer name.
func NewPipelineWorker(pipeline *Pipeline, source Source, consumerGroup, consumer string, log *zap.Logger) *PipelineWorker {
	if log == nil {
		log = zap.NewNop()
	}
	return &PipelineWorker{
		BaseWorker: worker.NewBaseWorker("poi-enrichment", consumerGroup, log),
		pipeline:   pipeline,
		source:     source,
		consumer:   consumer,
	}
}

// Start ensures the consumer group exists, then runs the pipeline against
// the source's stream until ctx is canceled or the worker is stopped.
func (w *PipelineWorker) Start(ctx context.Context) error {
	if err := w.source.EnsureGroup(ctx, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("poi worker: ensure consumer group: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	input := w.source.Consume(runCtx, w.ConsumerGroup(), w.consumer)
	dropped, err := w.pipeline.Run(runCtx, input)
	if dropped > 0 {
		w.Logger().Warn("poi worker dropped records", zap.Int("dropped", dropped))
	}
	if err != nil && runCtx.Err() == nil {
		return fmt.Errorf("poi worker: pipeline run: %w", err)
	}
	return nil
}
