package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRecomputeFeeSummary = "fees:recompute-summary"

type RecomputeSummaryPayload struct {
	BatchID     string    `json:"batch_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewRecomputeSummaryTask(batchID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RecomputeSummaryPayload{BatchID: batchID, RequestedAt: time.Now()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecomputeFeeSummary, payload), nil
}
