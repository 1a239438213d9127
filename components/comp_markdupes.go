package components

import (
	sp "github.com/scipipe/scipipe"
)

// MarkDuplicates marks PCR duplicates in a sorted BAM with Picard.
type MarkDuplicates struct {
	*sp.Process
}

// MarkDuplicatesConf contains parameters for initializing a MarkDuplicates
// process
type MarkDuplicatesConf struct {
	SampleID  string
	PicardJar string
	OutDir    string
	TmpDir    string
	Prefix    string
}

// NewMarkDuplicates returns a new MarkDuplicates process
func NewMarkDuplicates(wf *sp.Workflow, name string, conf MarkDuplicatesConf) *MarkDuplicates {
	outBase := conf.OutDir + "/" + conf.SampleID + ".md"
	cmd := conf.Prefix + `java -Xmx15g -jar ` + conf.PicardJar + ` MarkDuplicates \
		INPUT={i:bam} \
		METRICS_FILE=` + outBase + `.metrics \
		TMP_DIR=` + conf.TmpDir + ` \
		ASSUME_SORTED=true \
		VALIDATION_STRINGENCY=LENIENT \
		CREATE_INDEX=TRUE \
		OUTPUT={o:bam} # {o:bai}`
	p := wf.NewProc(name, cmd)
	p.SetOut("bam", outBase+".bam")
	p.SetOut("bai", outBase+".bai")
	return &MarkDuplicates{p}
}

// InBam returns the Bam in-port
func (p *MarkDuplicates) InBam() *sp.InPort { return p.In("bam") }

// OutBam returns the Bam out-port
func (p *MarkDuplicates) OutBam() *sp.OutPort { return p.Out("bam") }

// OutBai returns the Bai out-port, written by Picard next to the BAM
// (CREATE_INDEX=TRUE)
func (p *MarkDuplicates) OutBai() *sp.OutPort { return p.Out("bai") }
