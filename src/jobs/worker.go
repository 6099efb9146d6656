package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
)

// SummaryRefresher is the part of fees.SummaryRefresher the worker needs.
type SummaryRefresher interface {
	Refresh(ctx context.Context) (map[string]models.ClassFeeSummary, error)
}

func HandleRecomputeSummaryTask(refresher SummaryRefresher) asynq.HandlerFunc {
	log := logger.Module("jobs")
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RecomputeSummaryPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.LogError(log, "HandleRecomputeSummaryTask", "decode payload", string(t.Payload()), err)
			// payload เสีย retry ไปก็ไม่หาย
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		summaries, err := refresher.Refresh(ctx)
		if err != nil {
			logger.LogError(log, "HandleRecomputeSummaryTask", "refresh class summaries", payload.BatchID, err)
			return err
		}
		log.WithField("batchId", payload.BatchID).WithField("classes", len(summaries)).Info("✅ class summaries recomputed")
		return nil
	}
}

// RegisterHandlers ผูก handler ทั้งหมดของ worker เข้ากับ mux
func RegisterHandlers(mux *asynq.ServeMux, refresher SummaryRefresher) {
	mux.HandleFunc(TypeRecomputeFeeSummary, HandleRecomputeSummaryTask(refresher))
}
