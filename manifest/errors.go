package manifest

import "fmt"

// MissingManifestError means the manifest file is absent or unreadable.
type MissingManifestError struct {
	Path string
	Err  error
}

func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *MissingManifestError) Unwrap() error { return e.Err }

// MalformedManifestError means a manifest line did not split into the
// schema's exact column count. Line is 1-based.
type MalformedManifestError struct {
	Path     string
	Line     int
	Schema   string
	Expected int
	Actual   int
}

func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("manifest %s line %d: %d fields, but schema %s expects %d",
		e.Path, e.Line, e.Actual, e.Schema, e.Expected)
}

// DuplicateSampleError means the same sample id appeared on two manifest
// rows. Line is the 1-based line of the second occurrence.
type DuplicateSampleError struct {
	Path     string
	SampleID string
	Line     int
}

func (e *DuplicateSampleError) Error() string {
	return fmt.Sprintf("manifest %s line %d: duplicate sample id %q",
		e.Path, e.Line, e.SampleID)
}

// UnknownSampleError means a sample id was requested that is not present
// in the manifest.
type UnknownSampleError struct {
	SampleID string
}

func (e *UnknownSampleError) Error() string {
	return fmt.Sprintf("unknown sample id %q", e.SampleID)
}

// MissingCohortMappingError means a cohort lookup was attempted against a
// schema that has no cohort_id column. This is a caller/schema mismatch,
// not bad input data.
type MissingCohortMappingError struct {
	Schema string
}

func (e *MissingCohortMappingError) Error() string {
	return fmt.Sprintf("schema %s has no cohort_id column", e.Schema)
}
