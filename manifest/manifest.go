// Package manifest resolves sample manifests: delimited text files
// enumerating samples and their associated input file paths. A manifest is
// parsed once per pipeline run, against an explicit schema, into a
// read-only Registry that every downstream stage uses to build file paths
// and command lines. Registries are never mutated after construction and
// can be shared freely across concurrent consumers.
package manifest

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/shenwei356/xopen"
)

// Registry is the in-memory index derived from one manifest file.
type Registry struct {
	schema   Schema
	order    []string
	byID     map[string][]string
	cohortOf map[string]string
}

// ParseManifest reads the manifest at path line by line and indexes it
// according to schema. Blank lines are skipped. A line whose field count
// differs from the schema, or a repeated sample id, aborts the parse.
// Input paths are not checked for existence here; downstream stages stat
// them when they are consumed. Gzipped manifests are read transparently.
func ParseManifest(path string, schema Schema) (*Registry, error) {
	if path == "" {
		return nil, &MissingManifestError{Path: path, Err: os.ErrNotExist}
	}
	reg := &Registry{
		schema:   schema,
		byID:     map[string][]string{},
		cohortOf: map[string]string{},
	}
	fh, err := xopen.Ropen(path)
	if errors.Is(err, xopen.ErrNoContent) {
		// A zero-byte manifest is a manifest with no samples
		return reg, nil
	}
	if err != nil {
		return nil, &MissingManifestError{Path: path, Err: err}
	}
	defer fh.Close()
	sampleCol := schema.indexOf(FieldSampleID)
	cohortCol := schema.indexOf(FieldCohortID)

	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := schema.split(line)
		if len(fields) != schema.Columns() {
			return nil, &MalformedManifestError{
				Path:     path,
				Line:     lineNo,
				Schema:   schema.Name,
				Expected: schema.Columns(),
				Actual:   len(fields),
			}
		}
		sampleID := fields[sampleCol]
		if _, seen := reg.byID[sampleID]; seen {
			return nil, &DuplicateSampleError{Path: path, SampleID: sampleID, Line: lineNo}
		}
		paths := make([]string, 0, schema.Columns()-1)
		for i, field := range fields {
			if i == sampleCol || i == cohortCol {
				continue
			}
			paths = append(paths, field)
		}
		reg.order = append(reg.order, sampleID)
		reg.byID[sampleID] = paths
		if cohortCol >= 0 {
			reg.cohortOf[sampleID] = fields[cohortCol]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &MissingManifestError{Path: path, Err: err}
	}
	return reg, nil
}

// Schema returns the schema the manifest was parsed with.
func (r *Registry) Schema() Schema { return r.schema }

// Len returns the number of samples in the manifest.
func (r *Registry) Len() int { return len(r.order) }

// SampleIDs returns every sample id, in manifest order.
func (r *Registry) SampleIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// InputPaths returns the input file paths of one sample, in manifest
// column order.
func (r *Registry) InputPaths(sampleID string) ([]string, error) {
	paths, ok := r.byID[sampleID]
	if !ok {
		return nil, &UnknownSampleError{SampleID: sampleID}
	}
	out := make([]string, len(paths))
	copy(out, paths)
	return out, nil
}

// CohortID resolves the external cohort/genotype identifier of a sample,
// used to cross-reference the separately supplied variant file.
func (r *Registry) CohortID(sampleID string) (string, error) {
	if !r.schema.HasCohort() {
		return "", &MissingCohortMappingError{Schema: r.schema.Name}
	}
	cohort, ok := r.cohortOf[sampleID]
	if !ok {
		return "", &UnknownSampleError{SampleID: sampleID}
	}
	return cohort, nil
}

// Select returns the sample ids to run: the whole manifest in file order
// when override is empty, otherwise exactly the override entries, each
// validated against the registry.
func (r *Registry) Select(override []string) ([]string, error) {
	if len(override) == 0 {
		return r.SampleIDs(), nil
	}
	for _, sampleID := range override {
		if _, ok := r.byID[sampleID]; !ok {
			return nil, &UnknownSampleError{SampleID: sampleID}
		}
	}
	out := make([]string, len(override))
	copy(out, override)
	return out, nil
}
