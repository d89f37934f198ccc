// Package lifecycle drives test tasks and test runs through their states,
// collects task results and tracks progress.
package lifecycle

import (
	"slices"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"go.trai.ch/zerr"
)

// StateChange describes one transition of a task or a run.
type StateChange struct {
	ID       domain.EID
	Label    string
	Previous domain.TaskState
	Current  domain.TaskState
}

// StateListener is called after a transition happened.
type StateListener func(StateChange)

// machine holds the current and the previous state of a task or run.
type machine struct {
	id    domain.EID
	label string

	mu        sync.Mutex
	state     domain.TaskState
	previous  domain.TaskState
	listeners []StateListener
}

func (m *machine) init(id domain.EID, label string) {
	m.id = id
	m.label = label
}

// State returns the current state.
func (m *machine) State() domain.TaskState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// PreviousState returns the state before the last transition.
func (m *machine) PreviousState() domain.TaskState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.previous
}

// AddListener registers a listener for state changes.
func (m *machine) AddListener(l StateListener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// transition moves to next if the current state is one of from (any state
// when from is empty) and next is a legal successor. Re-entering
// StateFinalizing succeeds without notifying listeners.
func (m *machine) transition(next domain.TaskState, from ...domain.TaskState) error {
	m.mu.Lock()
	cur := m.state
	if (len(from) > 0 && !slices.Contains(from, cur)) || !cur.CanTransitionTo(next) {
		m.mu.Unlock()
		return zerr.With(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrInvalidStateTransition, "illegal transition"),
			"id", m.id.String()),
			"from", cur.String()),
			"to", next.String())
	}
	if cur == next {
		m.mu.Unlock()
		return nil
	}
	m.previous = cur
	m.state = next
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	change := StateChange{ID: m.id, Label: m.label, Previous: cur, Current: next}
	for _, l := range listeners {
		l(change)
	}
	return nil
}

// interrupted reports whether a cancellation was requested, including a
// canceled task or run that has since been released.
func (m *machine) interrupted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case domain.StateCanceling, domain.StateCanceled:
		return true
	case domain.StateFinalizing:
		return m.previous == domain.StateCanceled
	default:
		return false
	}
}
