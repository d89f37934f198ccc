package definitions

import (
	"slices"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
)

type suiteFile struct {
	ID                        string        `yaml:"id"`
	Label                     string        `yaml:"label"`
	Description               string        `yaml:"description"`
	Version                   string        `yaml:"version"`
	Dependencies              []suiteRefDef `yaml:"dependencies"`
	Tags                      []string      `yaml:"tags"`
	TestObjectTypes           []string      `yaml:"testObjectTypes"`
	TranslationTemplateBundle string        `yaml:"translationTemplateBundle"`
	Modules                   []moduleDef   `yaml:"modules"`
}

type suiteRefDef struct {
	ID     string `yaml:"id"`
	Driver string `yaml:"driver"`
}

type moduleDef struct {
	ID    string    `yaml:"id"`
	Label string    `yaml:"label"`
	Cases []caseDef `yaml:"cases"`
}

type caseDef struct {
	ID    string    `yaml:"id"`
	Label string    `yaml:"label"`
	Steps []stepDef `yaml:"steps"`
}

type stepDef struct {
	ID         string         `yaml:"id"`
	Label      string         `yaml:"label"`
	Assertions []assertionDef `yaml:"assertions"`
}

type assertionDef struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	File     string `yaml:"file"`
	Expected string `yaml:"expected"`
}

// ExecutableTestSuiteKind loads ExecutableTestSuite-*.yaml files owned by driverID.
//
// Dependencies on suites of the same driver, tags, test object types and the
// translation template bundle must be available before the suite is built. Dependencies on suites
// of other drivers are only recorded; they are resolved when a run is assembled.
func ExecutableTestSuiteKind(driverID string) loader.Kind[*domain.ExecutableTestSuite] {
	return &yamlKind[*domain.ExecutableTestSuite, suiteFile]{
		name:     "executable test suite",
		prefix:   "ExecutableTestSuite-",
		priority: PriorityExecutableSuite,
		draft: func(path string, def *suiteFile) (loader.Draft[*domain.ExecutableTestSuite], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}

			refs := make([]domain.SuiteRef, 0, len(def.Dependencies))
			var local []domain.EID
			for _, d := range def.Dependencies {
				ref := domain.SuiteRef{ID: domain.NewEID(d.ID)}
				if ref.ID.IsZero() {
					continue
				}
				if d.Driver != "" && d.Driver != driverID {
					ref.DriverID = d.Driver
				} else {
					local = append(local, ref.ID)
				}
				refs = append(refs, ref)
			}
			tags := domain.NewEIDs(def.Tags)
			types := domain.NewEIDs(def.TestObjectTypes)
			bundle := domain.NewEID(def.TranslationTemplateBundle)

			deps := slices.Concat(local, tags, types)
			if !bundle.IsZero() {
				deps = append(deps, bundle)
			}

			modules := convertModules(def.Modules)

			return &draft[*domain.ExecutableTestSuite]{
				deps: deps,
				build: func(resolved map[domain.EID]domain.Item) (*domain.ExecutableTestSuite, error) {
					for _, l := range local {
						if _, err := resolvedAs[*domain.ExecutableTestSuite](resolved, l); err != nil {
							return nil, err
						}
					}
					for _, t := range tags {
						if _, err := resolvedAs[*domain.Tag](resolved, t); err != nil {
							return nil, err
						}
					}
					for _, ot := range types {
						if _, err := resolvedAs[*domain.TestObjectType](resolved, ot); err != nil {
							return nil, err
						}
					}
					if !bundle.IsZero() {
						if _, err := resolvedAs[*domain.TranslationTemplateBundle](resolved, bundle); err != nil {
							return nil, err
						}
					}

					ets := &domain.ExecutableTestSuite{
						EID:                         id,
						Label:                       def.Label,
						Description:                 def.Description,
						Version:                     def.Version,
						DriverID:                    driverID,
						Dependencies:                refs,
						TagIDs:                      tags,
						TestObjectTypeIDs:           types,
						TranslationTemplateBundleID: bundle,
						Modules:                     modules,
						Source:                      path,
					}
					ets.LowestLevelItemSize = ets.CountAssertions()
					return ets, nil
				},
			}, nil
		},
	}
}

func convertModules(defs []moduleDef) []domain.TestModule {
	modules := make([]domain.TestModule, 0, len(defs))
	for _, m := range defs {
		module := domain.TestModule{EID: domain.NewEID(m.ID), Label: m.Label}
		for _, c := range m.Cases {
			tc := domain.TestCase{EID: domain.NewEID(c.ID), Label: c.Label}
			for _, s := range c.Steps {
				step := domain.TestStep{EID: domain.NewEID(s.ID), Label: s.Label}
				for _, a := range s.Assertions {
					expected := domain.ParseResultStatus(a.Expected)
					if expected == domain.StatusUndefined {
						expected = domain.StatusPassed
					}
					step.Assertions = append(step.Assertions, domain.TestAssertion{
						EID:      domain.NewEID(a.ID),
						Label:    a.Label,
						File:     a.File,
						Expected: expected,
					})
				}
				tc.Steps = append(tc.Steps, step)
			}
			module.Cases = append(module.Cases, tc)
		}
		modules = append(modules, module)
	}
	return modules
}
