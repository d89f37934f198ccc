package definitions

import (
	"path/filepath"
	"slices"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
)

type testObjectTypeFile struct {
	ID                 string   `yaml:"id"`
	Label              string   `yaml:"label"`
	Description        string   `yaml:"description"`
	Parent             string   `yaml:"parent"`
	FilenameExtensions []string `yaml:"filenameExtensions"`
	MimeTypes          []string `yaml:"mimeTypes"`
}

type testObjectFile struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Resource    string `yaml:"resource"`
}

type tagFile struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Priority    int    `yaml:"priority"`
}

type bundleFile struct {
	ID        string                       `yaml:"id"`
	Parent    string                       `yaml:"parent"`
	Templates map[string]map[string]string `yaml:"templates"`
}

type runTemplateFile struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Suites      []string `yaml:"suites"`
	TestObjects []string `yaml:"testObjects"`
}

// TestObjectTypeKind loads TestObjectType-*.yaml files. A type with a parent is
// built once the parent type is available.
func TestObjectTypeKind() loader.Kind[*domain.TestObjectType] {
	return &yamlKind[*domain.TestObjectType, testObjectTypeFile]{
		name:     "test object type",
		prefix:   "TestObjectType-",
		priority: PriorityTestObjectType,
		draft: func(path string, def *testObjectTypeFile) (loader.Draft[*domain.TestObjectType], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}
			parent := domain.NewEID(def.Parent)
			var deps []domain.EID
			if !parent.IsZero() {
				deps = append(deps, parent)
			}
			return &draft[*domain.TestObjectType]{
				deps: deps,
				build: func(resolved map[domain.EID]domain.Item) (*domain.TestObjectType, error) {
					if !parent.IsZero() {
						if _, err := resolvedAs[*domain.TestObjectType](resolved, parent); err != nil {
							return nil, err
						}
					}
					return &domain.TestObjectType{
						EID:                id,
						Label:              def.Label,
						Description:        def.Description,
						Parent:             parent,
						FilenameExtensions: def.FilenameExtensions,
						MimeTypes:          def.MimeTypes,
					}, nil
				},
			}, nil
		},
	}
}

// TestObjectKind loads TestObject-*.yaml files. Relative resource paths are
// resolved against the directory of the file.
func TestObjectKind() loader.Kind[*domain.TestObject] {
	return &yamlKind[*domain.TestObject, testObjectFile]{
		name:     "test object",
		prefix:   "TestObject-",
		priority: PriorityTestObject,
		draft: func(path string, def *testObjectFile) (loader.Draft[*domain.TestObject], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}
			resource := def.Resource
			if resource != "" && !filepath.IsAbs(resource) {
				resource = filepath.Join(filepath.Dir(path), resource)
			}
			obj := &domain.TestObject{
				EID:          id,
				Label:        def.Label,
				Description:  def.Description,
				ResourcePath: resource,
			}
			return &draft[*domain.TestObject]{
				build: func(map[domain.EID]domain.Item) (*domain.TestObject, error) { return obj, nil },
			}, nil
		},
	}
}

// TagKind loads Tag-*.yaml files.
func TagKind() loader.Kind[*domain.Tag] {
	return &yamlKind[*domain.Tag, tagFile]{
		name:     "tag",
		prefix:   "Tag-",
		priority: PriorityTag,
		draft: func(path string, def *tagFile) (loader.Draft[*domain.Tag], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}
			tag := &domain.Tag{EID: id, Label: def.Label, Description: def.Description, Priority: def.Priority}
			return &draft[*domain.Tag]{
				build: func(map[domain.EID]domain.Item) (*domain.Tag, error) { return tag, nil },
			}, nil
		},
	}
}

// TranslationTemplateBundleKind loads TranslationTemplateBundle-*.yaml files.
// A bundle with a parent is built once the parent is available.
func TranslationTemplateBundleKind() loader.Kind[*domain.TranslationTemplateBundle] {
	return &yamlKind[*domain.TranslationTemplateBundle, bundleFile]{
		name:     "translation template bundle",
		prefix:   "TranslationTemplateBundle-",
		priority: PriorityTemplateBundle,
		draft: func(path string, def *bundleFile) (loader.Draft[*domain.TranslationTemplateBundle], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}
			parent := domain.NewEID(def.Parent)
			var deps []domain.EID
			if !parent.IsZero() {
				deps = append(deps, parent)
			}
			return &draft[*domain.TranslationTemplateBundle]{
				deps: deps,
				build: func(resolved map[domain.EID]domain.Item) (*domain.TranslationTemplateBundle, error) {
					if !parent.IsZero() {
						if _, err := resolvedAs[*domain.TranslationTemplateBundle](resolved, parent); err != nil {
							return nil, err
						}
					}
					return &domain.TranslationTemplateBundle{
						EID:       id,
						Parent:    parent,
						Templates: def.Templates,
						Source:    path,
					}, nil
				},
			}, nil
		},
	}
}

// TestRunTemplateKind loads TestRunTemplate-*.yaml files. A template is built
// once all of its suites and test objects are available.
func TestRunTemplateKind() loader.Kind[*domain.TestRunTemplate] {
	return &yamlKind[*domain.TestRunTemplate, runTemplateFile]{
		name:     "test run template",
		prefix:   "TestRunTemplate-",
		priority: PriorityRunTemplate,
		draft: func(path string, def *runTemplateFile) (loader.Draft[*domain.TestRunTemplate], error) {
			id, err := requireID(path, def.ID)
			if err != nil {
				return nil, err
			}
			suites := domain.NewEIDs(def.Suites)
			objects := domain.NewEIDs(def.TestObjects)
			return &draft[*domain.TestRunTemplate]{
				deps: slices.Concat(suites, objects),
				build: func(resolved map[domain.EID]domain.Item) (*domain.TestRunTemplate, error) {
					for _, s := range suites {
						if _, err := resolvedAs[*domain.ExecutableTestSuite](resolved, s); err != nil {
							return nil, err
						}
					}
					for _, o := range objects {
						if _, err := resolvedAs[*domain.TestObject](resolved, o); err != nil {
							return nil, err
						}
					}
					return &domain.TestRunTemplate{
						EID:           id,
						Label:         def.Label,
						SuiteIDs:      suites,
						TestObjectIDs: objects,
					}, nil
				},
			}, nil
		},
	}
}
