package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ResultStatus is the outcome of a result tree node.
type ResultStatus uint8

const (
	// StatusUndefined is the status of a result that has not ended yet.
	StatusUndefined ResultStatus = iota
	// StatusPassed marks a successful check.
	StatusPassed
	// StatusFailed marks a failed check.
	StatusFailed
	// StatusSkipped marks a check that was not executed.
	StatusSkipped
	// StatusNotApplicable marks a check that does not apply to the test object.
	StatusNotApplicable
	// StatusWarning marks a passed check with findings.
	StatusWarning
	// StatusInfo marks an informational result.
	StatusInfo
	// StatusInternalError marks a result that could not be computed.
	StatusInternalError
)

var statusNames = [...]string{
	StatusUndefined:     "UNDEFINED",
	StatusPassed:        "PASSED",
	StatusFailed:        "FAILED",
	StatusSkipped:       "SKIPPED",
	StatusNotApplicable: "NOT_APPLICABLE",
	StatusWarning:       "WARNING",
	StatusInfo:          "INFO",
	StatusInternalError: "INTERNAL_ERROR",
}

// String returns the upper case name of the status.
func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return statusNames[StatusUndefined]
}

// ParseResultStatus converts a status name into a ResultStatus.
// Unknown names yield StatusUndefined.
func ParseResultStatus(s string) ResultStatus {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range statusNames {
		if name == s {
			return ResultStatus(i)
		}
	}
	return StatusUndefined
}

// MarshalText implements encoding.TextMarshaler.
func (s ResultStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ResultStatus) UnmarshalText(text []byte) error {
	*s = ParseResultStatus(string(text))
	return nil
}

// ResultLevel is the depth of a node in the result tree.
type ResultLevel uint8

const (
	// LevelTask is the root of a result tree.
	LevelTask ResultLevel = iota
	// LevelModule is a test module result.
	LevelModule
	// LevelCase is a test case result.
	LevelCase
	// LevelStep is a test step result.
	LevelStep
	// LevelAssertion is a test assertion result.
	LevelAssertion
)

var levelNames = [...]string{"task", "module", "case", "step", "assertion"}

// String returns the lower case name of the level.
func (l ResultLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (l ResultLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *ResultLevel) UnmarshalText(text []byte) error {
	for i, name := range levelNames {
		if name == string(text) {
			*l = ResultLevel(i)
			return nil
		}
	}
	return zerr.With(zerr.New("unknown result level"), "level", string(text))
}

// Message is a translatable message attached to a result.
type Message struct {
	TemplateID string            `json:"template"`
	Arguments  map[string]string `json:"arguments,omitempty"`
}

// Attachment describes additional output of a result. Its content is stored elsewhere.
type Attachment struct {
	EID      EID    `json:"id"`
	Label    string `json:"label"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int    `json:"size"`
}

// ResultNode is one node of a result tree.
type ResultNode struct {
	EID          EID           `json:"id"`
	ResultedFrom EID           `json:"resultedFrom"`
	Level        ResultLevel   `json:"level"`
	Status       ResultStatus  `json:"status"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     time.Duration `json:"duration"`
	Messages     []Message     `json:"messages,omitempty"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
	Children     []*ResultNode `json:"children,omitempty"`
}

// TestTaskResult is the persisted outcome of one test task.
type TestTaskResult struct {
	EID          EID         `json:"id"`
	TaskID       EID         `json:"task"`
	RunID        EID         `json:"run"`
	SuiteID      EID         `json:"suite"`
	TestObjectID EID         `json:"testObject"`
	Root         *ResultNode `json:"root,omitempty"`
	Errors       []string    `json:"errors,omitempty"`
}

// ID implements Item.
func (r *TestTaskResult) ID() EID { return r.EID }

// Status returns the status of the root node.
func (r *TestTaskResult) Status() ResultStatus {
	if r.Root == nil {
		if len(r.Errors) > 0 {
			return StatusInternalError
		}
		return StatusUndefined
	}
	return r.Root.Status
}
