package definitions

import (
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
)

// Stores persist the metadata items. Every field may be nil.
type Stores struct {
	TestObjectTypes ports.Store[*domain.TestObjectType]
	TestObjects     ports.Store[*domain.TestObject]
	Tags            ports.Store[*domain.Tag]
	Bundles         ports.Store[*domain.TranslationTemplateBundle]
	RunTemplates    ports.Store[*domain.TestRunTemplate]
}

// Catalog holds the factories of all metadata kinds that live outside of drivers.
type Catalog struct {
	TestObjectTypes *loader.Factory[*domain.TestObjectType]
	TestObjects     *loader.Factory[*domain.TestObject]
	Tags            *loader.Factory[*domain.Tag]
	Bundles         *loader.Factory[*domain.TranslationTemplateBundle]
	RunTemplates    *loader.Factory[*domain.TestRunTemplate]
}

// NewCatalog creates the metadata factories sharing one registry.
func NewCatalog(registry ports.ItemRegistry, stores Stores, logger ports.Logger) *Catalog {
	return &Catalog{
		TestObjectTypes: loader.NewFactory(TestObjectTypeKind(), registry, stores.TestObjectTypes, logger),
		TestObjects:     loader.NewFactory(TestObjectKind(), registry, stores.TestObjects, logger),
		Tags:            loader.NewFactory(TagKind(), registry, stores.Tags, logger),
		Bundles:         loader.NewFactory(TranslationTemplateBundleKind(), registry, stores.Bundles, logger),
		RunTemplates:    loader.NewFactory(TestRunTemplateKind(), registry, stores.RunTemplates, logger),
	}
}

// Handlers returns the factories as directory handlers.
func (c *Catalog) Handlers() []loader.Handler {
	return []loader.Handler{c.TestObjectTypes, c.TestObjects, c.Tags, c.Bundles, c.RunTemplates}
}
