package lookup

import (
	"context"
	"fmt"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver asks the owning drivers for suites until all of them are known.
type Resolver struct {
	drivers  ports.DriverProvider
	logger   ports.Logger
	maxTries int
}

// NewResolver creates a resolver. A maxTries below one uses domain.DefaultLookupMaxTries.
func NewResolver(drivers ports.DriverProvider, logger ports.Logger, maxTries int) *Resolver {
	if maxTries < 1 {
		maxTries = domain.DefaultLookupMaxTries
	}
	return &Resolver{drivers: drivers, logger: logger, maxTries: maxTries}
}

// Resolve returns the suite referenced by ref together with all suites it
// transitively depends on. ref.DriverID must name the owning driver.
//
// Each round asks one driver with outstanding suites. Resolve fails with
// domain.ErrNotFound if suites are still unknown after the configured number of rounds.
func (r *Resolver) Resolve(ctx context.Context, ref domain.SuiteRef) (map[domain.EID]*domain.ExecutableTestSuite, error) {
	set := NewSet(ref.DriverID, ref.ID)

	for round := 1; round <= r.maxTries; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		driverID, ok := set.Next()
		if !ok {
			return set.Known(), nil
		}

		driver, err := r.drivers.Driver(driverID)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to look up executable test suites"), "suite", ref.ID.String())
		}
		r.logger.Debug(fmt.Sprintf("lookup round %d: asking driver %s for %d suite(s)", round, driverID, len(set.unknown[driverID])))

		set.Select(driverID)
		driver.LookupExecutableTestSuites(set)
		set.Select("")
	}

	if _, ok := set.Next(); !ok {
		return set.Known(), nil
	}
	err := zerr.Wrap(domain.ErrNotFound, "failed to resolve executable test suites")
	err = zerr.With(err, "suite", ref.ID.String())
	err = zerr.With(err, "unresolved", set.Outstanding())
	return nil, err
}
