package jobs

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RecomputeNotifier enqueues one recompute task per ledger batch.
type RecomputeNotifier struct {
	client taskEnqueuer
}

func NewRecomputeNotifier(client taskEnqueuer) *RecomputeNotifier {
	return &RecomputeNotifier{client: client}
}

func (n *RecomputeNotifier) NotifyRecompute(ctx context.Context, batchID string) error {
	task, err := NewRecomputeSummaryTask(batchID)
	if err != nil {
		return err
	}
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.TaskID("recompute-summary-"+batchID),
		asynq.MaxRetry(3),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
