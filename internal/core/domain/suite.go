package domain

import "time"

// SuiteRef references an executable test suite that may be owned by another driver.
// An empty DriverID means the suite is owned by the same driver as the referrer.
type SuiteRef struct {
	ID       EID    `json:"id"`
	DriverID string `json:"driver,omitempty"`
}

// ExecutableTestSuite is a dependency aware test suite definition owned by one test driver.
type ExecutableTestSuite struct {
	EID                         EID          `json:"id"`
	Label                       string       `json:"label"`
	Description                 string       `json:"description,omitempty"`
	Version                     string       `json:"version,omitempty"`
	DriverID                    string       `json:"driver"`
	Dependencies                []SuiteRef   `json:"dependencies,omitempty"`
	TagIDs                      []EID        `json:"tags,omitempty"`
	TestObjectTypeIDs           []EID        `json:"testObjectTypes,omitempty"`
	TranslationTemplateBundleID EID          `json:"translationTemplateBundle,omitzero"`
	LowestLevelItemSize         int          `json:"lowestLevelItemSize"`
	Modules                     []TestModule `json:"modules,omitempty"`
	Source                      string       `json:"source,omitempty"`
}

// ID implements Item.
func (s *ExecutableTestSuite) ID() EID { return s.EID }

// DependencyOwner returns the driver owning the referenced suite.
func (s *ExecutableTestSuite) DependencyOwner(ref SuiteRef) string {
	if ref.DriverID == "" {
		return s.DriverID
	}
	return ref.DriverID
}

// CountAssertions returns the number of assertions in all modules.
func (s *ExecutableTestSuite) CountAssertions() int {
	n := 0
	for _, m := range s.Modules {
		for _, c := range m.Cases {
			for _, st := range c.Steps {
				n += len(st.Assertions)
			}
		}
	}
	return n
}

// TestModule groups test cases.
type TestModule struct {
	EID   EID        `json:"id"`
	Label string     `json:"label"`
	Cases []TestCase `json:"cases,omitempty"`
}

// TestCase groups test steps.
type TestCase struct {
	EID   EID        `json:"id"`
	Label string     `json:"label"`
	Steps []TestStep `json:"steps,omitempty"`
}

// TestStep groups test assertions.
type TestStep struct {
	EID        EID             `json:"id"`
	Label      string          `json:"label"`
	Assertions []TestAssertion `json:"assertions,omitempty"`
}

// TestAssertion is the lowest level item of a suite.
type TestAssertion struct {
	EID      EID          `json:"id"`
	Label    string       `json:"label"`
	File     string       `json:"file,omitempty"`
	Expected ResultStatus `json:"expected"`
}

// TestObject is the resource a suite is executed against.
type TestObject struct {
	EID          EID    `json:"id"`
	Label        string `json:"label"`
	Description  string `json:"description,omitempty"`
	ResourcePath string `json:"resource,omitempty"`
}

// ID implements Item.
func (o *TestObject) ID() EID { return o.EID }

// TestObjectType classifies the test objects a suite accepts. Types form a
// hierarchy through Parent.
type TestObjectType struct {
	EID                EID      `json:"id"`
	Label              string   `json:"label"`
	Description        string   `json:"description,omitempty"`
	Parent             EID      `json:"parent,omitzero"`
	FilenameExtensions []string `json:"filenameExtensions,omitempty"`
	MimeTypes          []string `json:"mimeTypes,omitempty"`
}

// ID implements Item.
func (t *TestObjectType) ID() EID { return t.EID }

// Tag classifies suites.
type Tag struct {
	EID         EID    `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// ID implements Item.
func (t *Tag) ID() EID { return t.EID }

// TranslationTemplateBundle holds message templates keyed by name and language.
type TranslationTemplateBundle struct {
	EID       EID                          `json:"id"`
	Parent    EID                          `json:"parent,omitzero"`
	Templates map[string]map[string]string `json:"templates,omitempty"`
	Source    string                       `json:"source,omitempty"`
}

// ID implements Item.
func (b *TranslationTemplateBundle) ID() EID { return b.EID }

// TestRunTemplate is a predefined combination of suites and test objects.
type TestRunTemplate struct {
	EID           EID    `json:"id"`
	Label         string `json:"label"`
	SuiteIDs      []EID  `json:"suites"`
	TestObjectIDs []EID  `json:"testObjects,omitempty"`
}

// ID implements Item.
func (t *TestRunTemplate) ID() EID { return t.EID }

// ComponentInfo describes a loaded test driver.
type ComponentInfo struct {
	ID      string
	Name    string
	Version string
	Vendor  string
}

// TestTaskDto requests the execution of one suite against one test object.
type TestTaskDto struct {
	EID        EID                  `json:"id"`
	RunID      EID                  `json:"run"`
	Suite      *ExecutableTestSuite `json:"suite"`
	TestObject *TestObject          `json:"testObject"`
	Arguments  map[string]string    `json:"arguments,omitempty"`
}

// ID implements Item.
func (t *TestTaskDto) ID() EID { return t.EID }

// Label returns a human readable name of the task.
func (t *TestTaskDto) Label() string {
	if t.Suite == nil {
		return t.EID.String()
	}
	return t.Suite.Label
}

// TestRunDto requests the execution of an ordered list of tasks.
type TestRunDto struct {
	EID         EID            `json:"id"`
	Label       string         `json:"label"`
	DefaultLang string         `json:"defaultLang,omitempty"`
	StartedAt   time.Time      `json:"startedAt,omitzero"`
	Tasks       []*TestTaskDto `json:"tasks"`
}

// ID implements Item.
func (r *TestRunDto) ID() EID { return r.EID }
