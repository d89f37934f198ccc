package ports

import "iter"

//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks

// Hasher computes content hashes of definition files.
type Hasher interface {
	// ComputeFileHash returns the hash of the file content.
	ComputeFileHash(path string) (uint64, error)
}

// Walker lists the regular files below a directory.
type Walker interface {
	// WalkFiles yields absolute paths in lexical order. Hidden directories are skipped.
	WalkFiles(root string) iter.Seq[string]
}
