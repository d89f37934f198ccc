// Package definitions decodes the YAML definition files of test object types,
// test objects, tags,
// translation template bundles, executable test suites and test run templates.
package definitions

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Priorities of the definition kinds. Lower priorities load first.
const (
	PriorityTestObjectType  = 40
	PriorityTestObject      = 50
	PriorityTag             = 100
	PriorityTemplateBundle  = 200
	PriorityExecutableSuite = 300
	PriorityRunTemplate     = 500
)

// yamlKind is a loader.Kind for files named <prefix>*.yaml whose content decodes into D.
type yamlKind[T domain.Item, D any] struct {
	name     string
	prefix   string
	priority int
	draft    func(path string, def *D) (loader.Draft[T], error)
}

var _ loader.Kind[*domain.Tag] = (*yamlKind[*domain.Tag, tagFile])(nil)

func (k *yamlKind[T, D]) Name() string  { return k.name }
func (k *yamlKind[T, D]) Priority() int { return k.priority }

func (k *yamlKind[T, D]) Handles(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.HasPrefix(base, k.prefix) && (ext == ".yaml" || ext == ".yml")
}

func (k *yamlKind[T, D]) Parse(path string) (loader.Draft[T], error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the directory walker
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDefinitionReadFailed.Error()), "path", path)
	}

	var def D
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDefinitionParseFailed.Error()), "path", path)
	}
	return k.draft(path, &def)
}

// Release is a no-op: definition items hold no resources.
func (k *yamlKind[T, D]) Release(T) {}

// draft is a loader.Draft backed by a build function.
type draft[T domain.Item] struct {
	deps  []domain.EID
	build func(resolved map[domain.EID]domain.Item) (T, error)
}

func (d *draft[T]) Dependencies() []domain.EID { return d.deps }

func (d *draft[T]) Build(resolved map[domain.EID]domain.Item) (T, error) {
	return d.build(resolved)
}

// requireID converts the id field of a definition and rejects empty ids.
func requireID(path, id string) (domain.EID, error) {
	eid := domain.NewEID(id)
	if eid.IsZero() {
		return eid, zerr.With(zerr.Wrap(domain.ErrDefinitionInvalid, "definition has no id"), "path", path)
	}
	return eid, nil
}

// resolvedAs returns the resolved dependency id as a T.
func resolvedAs[T domain.Item](resolved map[domain.EID]domain.Item, id domain.EID) (T, error) {
	item, ok := resolved[id].(T)
	if !ok {
		var zero T
		return zero, zerr.With(zerr.Wrap(domain.ErrDefinitionInvalid, "dependency has the wrong type"), "id", id.String())
	}
	return item, nil
}
