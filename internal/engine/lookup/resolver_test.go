package lookup_test

import (
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/interactive-instruments/etf-spi/internal/engine/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func suite(id, driver string, deps ...domain.SuiteRef) *domain.ExecutableTestSuite {
	return &domain.ExecutableTestSuite{EID: domain.NewEID(id), DriverID: driver, Dependencies: deps}
}

type mocksSet struct {
	provider *mocks.MockDriverProvider
	log      *mocks.MockLogger
}

func setup(t *testing.T) (*gomock.Controller, mocksSet) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocksSet{
		provider: mocks.NewMockDriverProvider(ctrl),
		log:      mocks.NewMockLogger(ctrl),
	}
	m.log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return ctrl, m
}

func TestResolver_CrossDriver(t *testing.T) {
	ctrl, m := setup(t)
	d1 := mocks.NewMockTestDriver(ctrl)
	d2 := mocks.NewMockTestDriver(ctrl)

	a := suite("A", "D1", domain.SuiteRef{ID: domain.NewEID("B"), DriverID: "D2"})
	b := suite("B", "D2")

	m.provider.EXPECT().Driver("D1").Return(d1, nil)
	m.provider.EXPECT().Driver("D2").Return(d2, nil)

	gomock.InOrder(
		d1.EXPECT().LookupExecutableTestSuites(gomock.Any()).Do(func(req ports.SuiteLookupRequest) {
			assert.Equal(t, []domain.EID{a.EID}, req.Unknown())
			req.AddKnown(a)
		}),
		d2.EXPECT().LookupExecutableTestSuites(gomock.Any()).Do(func(req ports.SuiteLookupRequest) {
			assert.Equal(t, []domain.EID{b.EID}, req.Unknown())
			req.AddKnown(b)
		}),
	)

	r := lookup.NewResolver(m.provider, m.log, 0)
	got, err := r.Resolve(t.Context(), domain.SuiteRef{ID: a.EID, DriverID: "D1"})

	require.NoError(t, err)
	assert.Equal(t, map[domain.EID]*domain.ExecutableTestSuite{a.EID: a, b.EID: b}, got)
}

func TestResolver_DriverReportsOwnDependencies(t *testing.T) {
	ctrl, m := setup(t)
	d1 := mocks.NewMockTestDriver(ctrl)

	c := suite("C", "D1")
	a := suite("A", "D1", domain.SuiteRef{ID: c.EID})

	m.provider.EXPECT().Driver("D1").Return(d1, nil)
	d1.EXPECT().LookupExecutableTestSuites(gomock.Any()).Do(func(req ports.SuiteLookupRequest) {
		req.AddKnown(a, c)
	})

	r := lookup.NewResolver(m.provider, m.log, 0)
	got, err := r.Resolve(t.Context(), domain.SuiteRef{ID: a.EID, DriverID: "D1"})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestResolver_Exhausted(t *testing.T) {
	ctrl, m := setup(t)
	d1 := mocks.NewMockTestDriver(ctrl)

	m.provider.EXPECT().Driver("D1").Return(d1, nil).Times(3)
	d1.EXPECT().LookupExecutableTestSuites(gomock.Any()).Times(3)

	r := lookup.NewResolver(m.provider, m.log, 3)
	_, err := r.Resolve(t.Context(), domain.SuiteRef{ID: domain.NewEID("A"), DriverID: "D1"})

	require.ErrorIs(t, err, domain.ErrNotFound)
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, map[string][]string{"D1": {"A"}}, zErr.Metadata()["unresolved"])
}

func TestResolver_DriverNotLoaded(t *testing.T) {
	_, m := setup(t)
	m.provider.EXPECT().Driver("gone").Return(nil, domain.ErrComponentNotLoaded)

	r := lookup.NewResolver(m.provider, m.log, 0)
	_, err := r.Resolve(t.Context(), domain.SuiteRef{ID: domain.NewEID("A"), DriverID: "gone"})

	require.ErrorIs(t, err, domain.ErrComponentNotLoaded)
}

func TestSet(t *testing.T) {
	s := lookup.NewSet("D1", domain.NewEID("A"), domain.NewEID("A"))
	s.Enqueue("D2", domain.NewEID("B"))
	s.Enqueue("D2", domain.NewEID("B"), domain.EID{})

	assert.Equal(t, map[string][]string{"D1": {"A"}, "D2": {"B"}}, s.Outstanding())

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "D1", next)

	s.Select("D2")
	assert.Equal(t, []domain.EID{domain.NewEID("B")}, s.Unknown())

	// A suite reported by another driver than the one it was queued for still counts.
	s.AddKnown(suite("A", "D1", domain.SuiteRef{ID: domain.NewEID("B"), DriverID: "D2"}))
	assert.Equal(t, map[string][]string{"D2": {"B"}}, s.Outstanding())

	s.AddKnown(suite("B", "D2"))
	_, ok = s.Next()
	assert.False(t, ok)
	assert.Len(t, s.Known(), 2)

	// Known suites are never queued again.
	s.Enqueue("D1", domain.NewEID("A"))
	_, ok = s.Next()
	assert.False(t, ok)
}
