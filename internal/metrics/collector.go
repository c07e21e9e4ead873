package metrics

import (
	"fmt"
	"sync"
	"time"
)

// StageTimings measures the stages of a single request, such as loading,
// rendering and archiving a report, and exposes them as response headers.
type StageTimings struct {
	mu     sync.Mutex
	start  time.Time
	order  []string
	stages map[string]float64
}

// NewStageTimings starts the total clock.
func NewStageTimings() *StageTimings {
	return &StageTimings{
		start:  time.Now(),
		stages: make(map[string]float64),
	}
}

// Start begins timing a stage. Call the returned function when it ends.
func (t *StageTimings) Start(stage string) func() {
	began := time.Now()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, seen := t.stages[stage]; !seen {
			t.order = append(t.order, stage)
		}
		t.stages[stage] = float64(time.Since(began).Microseconds()) / 1000.0
	}
}

// Stage returns the recorded duration of a stage in milliseconds.
func (t *StageTimings) Stage(stage string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ms, ok := t.stages[stage]
	return ms, ok
}

// Headers returns X-Latency-<Stage>-Ms headers plus X-Latency-Total-Ms.
func (t *StageTimings) Headers() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	headers := make(map[string]string, len(t.order)+1)
	for _, stage := range t.order {
		headers["X-Latency-"+stage+"-Ms"] = formatFloat(t.stages[stage])
	}
	headers["X-Latency-Total-Ms"] = formatFloat(float64(time.Since(t.start).Microseconds()) / 1000.0)
	return headers
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
