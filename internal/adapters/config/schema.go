package config

// File is the structure of etf.yaml. Omitted values are nil and get
// defaults.
type File struct {
	Root        string   `yaml:"root"`
	ProjectsDir string   `yaml:"projectsDir"`
	DriversDir  string   `yaml:"driversDir"`
	DataDir     string   `yaml:"dataDir"`
	Drivers     []string `yaml:"drivers"`

	Lookup LookupSection `yaml:"lookup"`
	Loader LoaderSection `yaml:"loader"`
	Run    RunSection    `yaml:"run"`
	Log    LogSection    `yaml:"log"`
}

// LookupSection configures the cross driver suite lookup.
type LookupSection struct {
	MaxTries *int `yaml:"maxTries"`
}

// LoaderSection configures the definition loaders.
type LoaderSection struct {
	SuiteDelay *string `yaml:"suiteDelay"`
	Debounce   *string `yaml:"debounce"`
}

// RunSection configures test run execution.
type RunSection struct {
	StartDelay  *string `yaml:"startDelay"`
	Parallelism *int    `yaml:"parallelism"`
}

// LogSection configures logging.
type LogSection struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}
