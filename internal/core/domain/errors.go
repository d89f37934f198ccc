package domain

import "go.trai.ch/zerr"

var (
	// ErrCyclicDependency is returned when a strict sort encounters a dependency cycle.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrNotFound is returned when an identity has no entry or could not be resolved.
	ErrNotFound = zerr.New("object not found")

	// ErrAlreadyRegistered is returned when an item with an already resolved identity is registered again.
	ErrAlreadyRegistered = zerr.New("object already registered")

	// ErrInvalidStateTransition is returned when a lifecycle transition is not allowed from the current state.
	ErrInvalidStateTransition = zerr.New("invalid state transition")

	// ErrComponentLoading is returned when a component has no or more than one entry point.
	ErrComponentLoading = zerr.New("failed to load component")

	// ErrComponentNotLoaded is returned when a component is requested that has not been loaded.
	ErrComponentNotLoaded = zerr.New("component not loaded")

	// ErrComponentAlreadyLoaded is returned when a component is loaded twice.
	ErrComponentAlreadyLoaded = zerr.New("component already loaded")

	// ErrInitialization is returned when a component is used before it has been initialized.
	ErrInitialization = zerr.New("component not initialized")

	// ErrConfiguration is returned when a required configuration value is missing or invalid.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrTaskFailed is returned when the body of a test task failed.
	ErrTaskFailed = zerr.New("test task failed")

	// ErrInterrupted is returned at a cancellation checkpoint of a task that is being canceled.
	ErrInterrupted = zerr.New("test task interrupted")

	// ErrAlreadyPersisted is returned when a task result is set after it has been persisted.
	ErrAlreadyPersisted = zerr.New("test task result already persisted")

	// ErrResultProtocol is returned when result start and end calls are not properly nested.
	ErrResultProtocol = zerr.New("result collector protocol violation")

	// ErrNoTasks is returned when a test run could not be assembled from any requested task.
	ErrNoTasks = zerr.New("no test tasks could be created")

	// ErrNoProgress is returned when the progress of a run cannot be computed.
	ErrNoProgress = zerr.New("test run has no measurable progress")

	// ErrRunFailed is returned when a test run ends in the failed state.
	ErrRunFailed = zerr.New("test run failed")

	// ErrTestsFailed is returned when a completed run has failed test results.
	ErrTestsFailed = zerr.New("test run has failed results")

	// ErrDefinitionReadFailed is returned when a definition file cannot be read.
	ErrDefinitionReadFailed = zerr.New("failed to read definition file")

	// ErrDefinitionParseFailed is returned when a definition file cannot be parsed.
	ErrDefinitionParseFailed = zerr.New("failed to parse definition file")

	// ErrDefinitionInvalid is returned when a definition is missing required fields.
	ErrDefinitionInvalid = zerr.New("invalid definition")

	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a stored object cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored object")

	// ErrStoreUnmarshalFailed is returned when a stored object cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored object")

	// ErrStoreMarshalFailed is returned when an object cannot be marshaled for storage.
	ErrStoreMarshalFailed = zerr.New("failed to marshal object")

	// ErrStoreWriteFailed is returned when an object cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write object")

	// ErrStoreDeleteFailed is returned when an object cannot be removed from the store.
	ErrStoreDeleteFailed = zerr.New("failed to delete object")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find etf.yaml")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrResourceNotDirectory is returned when a test object resource is a file instead of a directory.
	ErrResourceNotDirectory = zerr.New("test object resource is not a directory")

	// ErrNoSuitesSpecified is returned when a run is requested without suites or template.
	ErrNoSuitesSpecified = zerr.New("no executable test suites specified")

	// ErrNoTestObjectSpecified is returned when a run is requested without a test object.
	ErrNoTestObjectSpecified = zerr.New("no test object specified")
)
