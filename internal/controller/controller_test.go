package controller

import (
	"sync"
	"time"
)

type fakeMetrics struct {
	mu              sync.Mutex
	swaps           map[string]int
	initializations map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{swaps: map[string]int{}, initializations: map[string]int{}}
}

func (m *fakeMetrics) RecordSwap(mode, outcome string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swaps[mode+"/"+outcome]++
}

func (m *fakeMetrics) RecordInitialization(mode, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initializations[mode+"/"+outcome]++
}
