package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Schoolhub/src/models"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "x"}, nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) (map[string]models.ClassFeeSummary, error) {
	f.calls++
	return map[string]models.ClassFeeSummary{"P1": {ClassName: "P1"}}, f.err
}

func TestRecomputeNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("TestEnqueuesTaskPerBatch", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		n := NewRecomputeNotifier(enq)
		require.NoError(t, n.NotifyRecompute(ctx, "batch-1"))

		require.Len(t, enq.tasks, 1)
		assert.Equal(t, TypeRecomputeFeeSummary, enq.tasks[0].Type())

		var payload RecomputeSummaryPayload
		require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
		assert.Equal(t, "batch-1", payload.BatchID)

		ids := []string{}
		for _, o := range enq.opts[0] {
			if o.Type() == asynq.TaskIDOpt {
				ids = append(ids, o.Value().(string))
			}
		}
		assert.Equal(t, []string{"recompute-summary-batch-1"}, ids)
	})

	t.Run("TestDuplicateTaskIDIsNotAnError", func(t *testing.T) {
		n := NewRecomputeNotifier(&fakeEnqueuer{err: asynq.ErrTaskIDConflict})
		assert.NoError(t, n.NotifyRecompute(ctx, "batch-1"))
	})

	t.Run("TestOtherErrorsPropagate", func(t *testing.T) {
		boom := errors.New("redis down")
		n := NewRecomputeNotifier(&fakeEnqueuer{err: boom})
		assert.ErrorIs(t, n.NotifyRecompute(ctx, "batch-1"), boom)
	})
}

func TestHandleRecomputeSummaryTask(t *testing.T) {
	ctx := context.Background()

	t.Run("TestRefreshes", func(t *testing.T) {
		r := &fakeRefresher{}
		task, err := NewRecomputeSummaryTask("batch-9")
		require.NoError(t, err)

		require.NoError(t, HandleRecomputeSummaryTask(r)(ctx, task))
		assert.Equal(t, 1, r.calls)
	})

	t.Run("TestBadPayloadSkipsRetry", func(t *testing.T) {
		r := &fakeRefresher{}
		err := HandleRecomputeSummaryTask(r)(ctx, asynq.NewTask(TypeRecomputeFeeSummary, []byte("{not json")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Zero(t, r.calls)
	})

	t.Run("TestRefreshErrorIsRetried", func(t *testing.T) {
		r := &fakeRefresher{err: errors.New("mongo timeout")}
		task, _ := NewRecomputeSummaryTask("batch-9")
		err := HandleRecomputeSummaryTask(r)(ctx, task)
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("TestRegisterHandlers", func(t *testing.T) {
		r := &fakeRefresher{}
		mux := asynq.NewServeMux()
		RegisterHandlers(mux, r)

		task, _ := NewRecomputeSummaryTask("batch-10")
		require.NoError(t, mux.ProcessTask(ctx, task))
		assert.Equal(t, 1, r.calls)
	})
}
