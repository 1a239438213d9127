package manifest

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.tsv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseManifestMapping(t *testing.T) {
	path := writeManifest(t, "1000g001\tS1\tdna_1.fq.gz\tdna_2.fq.gz\n1000g002\tS2\tdna_1.fq.gz\tdna_2.fq.gz")

	reg, err := ParseManifest(path, Mapping)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Wrong sample count:\nEXPECTED:\n2\nACTUAL:\n%d\n", reg.Len())
	}
	expectedIDs := []string{"S1", "S2"}
	if !reflect.DeepEqual(reg.SampleIDs(), expectedIDs) {
		t.Errorf("Wrong sample ids:\nEXPECTED:\n%v\nACTUAL:\n%v\n", expectedIDs, reg.SampleIDs())
	}
	for sampleID, expectedCohort := range map[string]string{
		"S1": "1000g001",
		"S2": "1000g002",
	} {
		cohort, err := reg.CohortID(sampleID)
		if err != nil {
			t.Fatal(err)
		}
		if cohort != expectedCohort {
			t.Errorf("Wrong cohort for %s:\nEXPECTED:\n%s\nACTUAL:\n%s\n", sampleID, expectedCohort, cohort)
		}
	}
	paths, err := reg.InputPaths("S1")
	if err != nil {
		t.Fatal(err)
	}
	expectedPaths := []string{"dna_1.fq.gz", "dna_2.fq.gz"}
	if !reflect.DeepEqual(paths, expectedPaths) {
		t.Errorf("Wrong input paths:\nEXPECTED:\n%v\nACTUAL:\n%v\n", expectedPaths, paths)
	}
}

func TestParseManifestRoundTrip(t *testing.T) {
	path := writeManifest(t, "c1 S1 a_1.fq.gz a_2.fq.gz r_1.fq.gz r_2.fq.gz\nc2 S2 b_1.fq.gz b_2.fq.gz q_1.fq.gz q_2.fq.gz\n")

	reg, err := ParseManifest(path, FullPipeline)
	if err != nil {
		t.Fatal(err)
	}
	for sampleID, expectedPaths := range map[string][]string{
		"S1": {"a_1.fq.gz", "a_2.fq.gz", "r_1.fq.gz", "r_2.fq.gz"},
		"S2": {"b_1.fq.gz", "b_2.fq.gz", "q_1.fq.gz", "q_2.fq.gz"},
	} {
		paths, err := reg.InputPaths(sampleID)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(paths, expectedPaths) {
			t.Errorf("Wrong paths for %s:\nEXPECTED:\n%v\nACTUAL:\n%v\n", sampleID, expectedPaths, paths)
		}
	}
}

func TestParseManifestSkipsBlankLines(t *testing.T) {
	path := writeManifest(t, "S1\ta.fq\tb.fq\n\n\nS2\tc.fq\td.fq\n")

	reg, err := ParseManifest(path, VariantCalling)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 2 {
		t.Errorf("Wrong sample count:\nEXPECTED:\n2\nACTUAL:\n%d\n", reg.Len())
	}
}

func TestParseManifestMalformedLine(t *testing.T) {
	path := writeManifest(t, "S1\ta.fq\tb.fq\nS2\tc.fq\n")

	_, err := ParseManifest(path, VariantCalling)
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedManifestError, got: %v", err)
	}
	if malformed.Line != 2 {
		t.Errorf("Wrong line number:\nEXPECTED:\n2\nACTUAL:\n%d\n", malformed.Line)
	}
	if malformed.Expected != 3 || malformed.Actual != 2 {
		t.Errorf("Wrong column counts: expected %d/actual %d", malformed.Expected, malformed.Actual)
	}
}

func TestParseManifestDuplicateSample(t *testing.T) {
	path := writeManifest(t, "S1\ta.fq\tb.fq\nS1\tc.fq\td.fq\n")

	_, err := ParseManifest(path, VariantCalling)
	var dup *DuplicateSampleError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateSampleError, got: %v", err)
	}
	if dup.SampleID != "S1" {
		t.Errorf("Wrong sample id:\nEXPECTED:\nS1\nACTUAL:\n%s\n", dup.SampleID)
	}
	if dup.Line != 2 {
		t.Errorf("Wrong line number:\nEXPECTED:\n2\nACTUAL:\n%d\n", dup.Line)
	}
}

func TestParseManifestMissingFile(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "nope.tsv"), VariantCalling)
	var missing *MissingManifestError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingManifestError, got: %v", err)
	}
}

func TestParseManifestEmptyPath(t *testing.T) {
	_, err := ParseManifest("", VariantCalling)
	var missing *MissingManifestError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingManifestError, got: %v", err)
	}
}

func TestParseManifestEmptyFile(t *testing.T) {
	reg, err := ParseManifest(writeManifest(t, ""), VariantCalling)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 0 {
		t.Errorf("Wrong sample count:\nEXPECTED:\n0\nACTUAL:\n%d\n", reg.Len())
	}
	selected, err := reg.Select(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 0 {
		t.Errorf("Wrong selection size:\nEXPECTED:\n0\nACTUAL:\n%d\n", len(selected))
	}
}

func TestParseManifestGzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(fh)
	if _, err := gz.Write([]byte("1000g001\tS1\trna_1.fq.gz\trna_2.fq.gz\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	reg, err := ParseManifest(path, Mapping)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Wrong sample count:\nEXPECTED:\n1\nACTUAL:\n%d\n", reg.Len())
	}
	cohort, err := reg.CohortID("S1")
	if err != nil {
		t.Fatal(err)
	}
	if cohort != "1000g001" {
		t.Errorf("Wrong cohort:\nEXPECTED:\n1000g001\nACTUAL:\n%s\n", cohort)
	}
	paths, err := reg.InputPaths("S1")
	if err != nil {
		t.Fatal(err)
	}
	expectedPaths := []string{"rna_1.fq.gz", "rna_2.fq.gz"}
	if !reflect.DeepEqual(paths, expectedPaths) {
		t.Errorf("Wrong input paths:\nEXPECTED:\n%v\nACTUAL:\n%v\n", expectedPaths, paths)
	}
}

func TestSelect(t *testing.T) {
	path := writeManifest(t, "S1\ta.fq\tb.fq\nS2\tc.fq\td.fq\nS3\te.fq\tf.fq\n")
	reg, err := ParseManifest(path, VariantCalling)
	if err != nil {
		t.Fatal(err)
	}

	all, err := reg.Select(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(all, []string{"S1", "S2", "S3"}) {
		t.Errorf("Wrong default selection:\nEXPECTED:\n[S1 S2 S3]\nACTUAL:\n%v\n", all)
	}

	subset, err := reg.Select([]string{"S3", "S1"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(subset, []string{"S3", "S1"}) {
		t.Errorf("Wrong override selection:\nEXPECTED:\n[S3 S1]\nACTUAL:\n%v\n", subset)
	}

	_, err = reg.Select([]string{"S1", "S9"})
	var unknown *UnknownSampleError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownSampleError, got: %v", err)
	}
	if unknown.SampleID != "S9" {
		t.Errorf("Wrong sample id:\nEXPECTED:\nS9\nACTUAL:\n%s\n", unknown.SampleID)
	}
}

func TestCohortLookupWithoutCohortColumn(t *testing.T) {
	path := writeManifest(t, "S1\ta.fq\tb.fq\n")
	reg, err := ParseManifest(path, VariantCalling)
	if err != nil {
		t.Fatal(err)
	}

	_, err = reg.CohortID("S1")
	var noCohort *MissingCohortMappingError
	if !errors.As(err, &noCohort) {
		t.Fatalf("Expected MissingCohortMappingError, got: %v", err)
	}
	if noCohort.Schema != "variant_calling" {
		t.Errorf("Wrong schema name:\nEXPECTED:\nvariant_calling\nACTUAL:\n%s\n", noCohort.Schema)
	}
}

func TestUnknownSampleLookups(t *testing.T) {
	path := writeManifest(t, "c1\tS1\ta.fq\tb.fq\n")
	reg, err := ParseManifest(path, Mapping)
	if err != nil {
		t.Fatal(err)
	}

	var unknown *UnknownSampleError
	if _, err := reg.InputPaths("S9"); !errors.As(err, &unknown) {
		t.Errorf("Expected UnknownSampleError from InputPaths, got: %v", err)
	}
	if _, err := reg.CohortID("S9"); !errors.As(err, &unknown) {
		t.Errorf("Expected UnknownSampleError from CohortID, got: %v", err)
	}
}

func TestSchemaShapes(t *testing.T) {
	for _, schema := range []Schema{VariantCalling, Mapping, Counts, FullPipeline} {
		expectedInputs := schema.Columns() - 1
		if schema.HasCohort() {
			expectedInputs--
		}
		if len(schema.InputFields()) != expectedInputs {
			t.Errorf("Schema %s: wrong input field count:\nEXPECTED:\n%d\nACTUAL:\n%d\n",
				schema.Name, expectedInputs, len(schema.InputFields()))
		}
	}
	if VariantCalling.HasCohort() {
		t.Error("variant_calling schema should have no cohort column")
	}
	for _, schema := range []Schema{Mapping, Counts, FullPipeline} {
		if !schema.HasCohort() {
			t.Errorf("Schema %s should have a cohort column", schema.Name)
		}
	}
}
