package lifecycle

import (
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
)

// Progress counts the completed steps of a task against a step budget.
type Progress struct {
	mu      sync.Mutex
	current int
	max     int
}

// NewProgress creates a progress with the given budget.
// A non-positive budget falls back to domain.DefaultMaxSteps.
func NewProgress(maxSteps int) *Progress {
	if maxSteps <= 0 {
		maxSteps = domain.DefaultMaxSteps
	}
	return &Progress{max: maxSteps}
}

// Advance completes one step. The budget grows when it is reached so that a
// running task never reports itself as done.
func (p *Progress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	if p.current >= p.max {
		p.max = p.current + 1
	}
}

// Get returns the completed steps and the current budget.
func (p *Progress) Get() (current, maxSteps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.max
}

// stepsOf returns the declared budget of a task.
func stepsOf(dto *domain.TestTaskDto) int {
	if dto.Suite != nil && dto.Suite.LowestLevelItemSize > 0 {
		return dto.Suite.LowestLevelItemSize
	}
	return domain.DefaultMaxSteps
}
