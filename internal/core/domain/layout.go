package domain

const (
	// ConfigFileName is the name of the engine configuration file.
	ConfigFileName = "etf.yaml"

	// DataDirName is the default name of the data directory.
	DataDirName = ".etf"

	// StoreDirName is the name of the object store directory.
	StoreDirName = "store"

	// ResultsDirName is the name of the test task result directory.
	ResultsDirName = "results"

	// ProjectsDirName is the default directory holding metadata definitions.
	ProjectsDirName = "projects"

	// DriversDirName is the default directory holding per driver definitions.
	DriversDirName = "testdrivers"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
