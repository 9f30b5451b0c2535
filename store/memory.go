package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsphweid/fretdex/model"
)

type Memory struct {
	mu   sync.RWMutex
	jobs map[string]model.Job
}

func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]model.Job)}
}

func (m *Memory) Put(_ context.Context, job model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return model.Job{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return job, nil
}
