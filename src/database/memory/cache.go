package memory

import (
	"context"
	"sync"

	"Backend-Schoolhub/src/models"
)

type SummaryCache struct {
	mu        sync.RWMutex
	summaries map[string]models.ClassFeeSummary
}

func NewSummaryCache() *SummaryCache {
	return &SummaryCache{}
}

func (c *SummaryCache) SetClassSummaries(_ context.Context, summaries map[string]models.ClassFeeSummary) error {
	cp := make(map[string]models.ClassFeeSummary, len(summaries))
	for k, v := range summaries {
		cp[k] = v
	}
	c.mu.Lock()
	c.summaries = cp
	c.mu.Unlock()
	return nil
}

func (c *SummaryCache) GetClassSummaries(_ context.Context) (map[string]models.ClassFeeSummary, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summaries == nil {
		return nil, false, nil
	}
	cp := make(map[string]models.ClassFeeSummary, len(c.summaries))
	for k, v := range c.summaries {
		cp[k] = v
	}
	return cp, true, nil
}
