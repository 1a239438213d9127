package components

import (
	"strings"
	"testing"

	sp "github.com/scipipe/scipipe"
)

func TestNewMarkDuplicates(t *testing.T) {
	wf := sp.NewWorkflow("wf_test_markdupes", 4)
	md := NewMarkDuplicates(wf, "markdupes", MarkDuplicatesConf{
		SampleID:  "S1",
		PicardJar: "picard.jar",
		OutDir:    "results",
		TmpDir:    "tmp",
	})

	if strings.Contains(md.CommandPattern, ".bam.tmp") {
		t.Errorf("Command should not rename temp-suffixed files itself:\n%s\n", md.CommandPattern)
	}
	if !strings.Contains(md.CommandPattern, "{o:bai}") {
		t.Errorf("Command should declare the BAM index as an output:\n%s\n", md.CommandPattern)
	}
	if md.OutBam() == nil {
		t.Error("Missing bam out-port")
	}
	if md.OutBai() == nil {
		t.Error("Missing bai out-port")
	}
	if md.InBam() == nil {
		t.Error("Missing bam in-port")
	}
}
