// Package lookup resolves executable test suites that are spread over several
// independently loaded test drivers.
package lookup

import (
	"slices"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// Set tracks which suites are still unknown per owning driver and which are
// already known. It is handed to one driver at a time as a ports.SuiteLookupRequest.
type Set struct {
	drivers []string
	unknown map[string][]domain.EID
	known   map[domain.EID]*domain.ExecutableTestSuite
	current string
}

var _ ports.SuiteLookupRequest = (*Set)(nil)

// NewSet creates a set waiting for the given suites of one driver.
func NewSet(driverID string, ids ...domain.EID) *Set {
	s := &Set{
		unknown: make(map[string][]domain.EID),
		known:   make(map[domain.EID]*domain.ExecutableTestSuite),
	}
	s.Enqueue(driverID, ids...)
	return s
}

// Enqueue adds suites that driverID is expected to know. Known and already
// queued suites are ignored.
func (s *Set) Enqueue(driverID string, ids ...domain.EID) {
	for _, id := range ids {
		if _, ok := s.known[id]; ok || id.IsZero() {
			continue
		}
		if slices.Contains(s.unknown[driverID], id) {
			continue
		}
		if !slices.Contains(s.drivers, driverID) {
			s.drivers = append(s.drivers, driverID)
		}
		s.unknown[driverID] = append(s.unknown[driverID], id)
	}
}

// Next returns the first driver, in the order drivers were enqueued, that
// still has unknown suites.
func (s *Set) Next() (string, bool) {
	for _, d := range s.drivers {
		if len(s.unknown[d]) > 0 {
			return d, true
		}
	}
	return "", false
}

// Select addresses the set to driverID.
func (s *Set) Select(driverID string) {
	s.current = driverID
}

// Unknown implements ports.SuiteLookupRequest.
func (s *Set) Unknown() []domain.EID {
	return slices.Clone(s.unknown[s.current])
}

// AddKnown implements ports.SuiteLookupRequest. Dependencies of the added
// suites that are not known yet are queued for their owning drivers.
func (s *Set) AddKnown(suites ...*domain.ExecutableTestSuite) {
	for _, ets := range suites {
		if ets == nil {
			continue
		}
		id := ets.ID()
		s.known[id] = ets
		for d, ids := range s.unknown {
			s.unknown[d] = slices.DeleteFunc(ids, func(u domain.EID) bool { return u == id })
		}
	}
	for _, ets := range suites {
		if ets == nil {
			continue
		}
		for _, ref := range ets.Dependencies {
			s.Enqueue(ets.DependencyOwner(ref), ref.ID)
		}
	}
}

// Known returns the known suites.
func (s *Set) Known() map[domain.EID]*domain.ExecutableTestSuite {
	res := make(map[domain.EID]*domain.ExecutableTestSuite, len(s.known))
	for id, ets := range s.known {
		res[id] = ets
	}
	return res
}

// Outstanding returns the unknown suite ids per driver.
func (s *Set) Outstanding() map[string][]string {
	res := make(map[string][]string)
	for d, ids := range s.unknown {
		if len(ids) > 0 {
			res[d] = domain.EIDStrings(ids)
		}
	}
	return res
}
