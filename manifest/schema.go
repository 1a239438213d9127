package manifest

import "strings"

// Field names with special meaning; every other field in a schema is an
// input file path column.
const (
	FieldCohortID = "cohort_id"
	FieldSampleID = "sample_id"
)

// Delimiter says how a manifest line is split into fields.
type Delimiter string

const (
	DelimiterTab        Delimiter = "tab"
	DelimiterWhitespace Delimiter = "whitespace"
)

// Schema declares the fixed column layout of one manifest variant: an
// ordered list of named fields plus the delimiter the file is written
// with. Schemas are never auto-detected; each pipeline picks its schema
// explicitly.
type Schema struct {
	Name      string
	Delimiter Delimiter
	Fields    []string
}

// The manifest schemas of the four pipeline variants.
var (
	VariantCalling = Schema{
		Name:      "variant_calling",
		Delimiter: DelimiterTab,
		Fields:    []string{FieldSampleID, "dna_fastq_1", "dna_fastq_2"},
	}
	Mapping = Schema{
		Name:      "mapping",
		Delimiter: DelimiterTab,
		Fields:    []string{FieldCohortID, FieldSampleID, "rna_fastq_1", "rna_fastq_2"},
	}
	Counts = Schema{
		Name:      "counts",
		Delimiter: DelimiterTab,
		Fields:    []string{FieldCohortID, FieldSampleID, "dna_bam", "rna_bam"},
	}
	FullPipeline = Schema{
		Name:      "full_pipeline",
		Delimiter: DelimiterWhitespace,
		Fields: []string{FieldCohortID, FieldSampleID,
			"dna_fastq_1", "dna_fastq_2", "rna_fastq_1", "rna_fastq_2"},
	}
)

// Columns returns the exact number of fields every manifest row must have.
func (s Schema) Columns() int {
	return len(s.Fields)
}

// HasCohort reports whether the schema carries a cohort_id column.
func (s Schema) HasCohort() bool {
	return s.indexOf(FieldCohortID) >= 0
}

// InputFields returns the names of the path-carrying columns, in order.
func (s Schema) InputFields() []string {
	fields := []string{}
	for _, f := range s.Fields {
		if f != FieldCohortID && f != FieldSampleID {
			fields = append(fields, f)
		}
	}
	return fields
}

func (s Schema) indexOf(name string) int {
	for i, f := range s.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

func (s Schema) split(line string) []string {
	if s.Delimiter == DelimiterWhitespace {
		return strings.Fields(line)
	}
	return strings.Split(line, "\t")
}
