package components

import (
	"strconv"

	sp "github.com/scipipe/scipipe"
)

// BwaAlign aligns paired-end DNA reads against a reference genome, piping
// through samtools into a sorted BAM.
type BwaAlign struct {
	*sp.Process
}

// BwaAlignConf contains parameters for initializing a BwaAlign process
type BwaAlignConf struct {
	SampleID string
	RefFasta string
	RefIndex string
	Threads  int
	OutDir   string
	Prefix   string
}

// NewBwaAlign returns a new BwaAlign process
func NewBwaAlign(wf *sp.Workflow, name string, conf BwaAlignConf) *BwaAlign {
	if conf.Threads == 0 {
		conf.Threads = 4
	}
	cmd := conf.Prefix + `bwa mem \
		-R "@RG\tID:` + conf.SampleID + `\tSM:` + conf.SampleID + `\tLB:` + conf.SampleID + `\tPL:illumina" \
		-B 3 -t ` + strconv.Itoa(conf.Threads) + ` -M ` + conf.RefFasta + ` {i:reads_1} {i:reads_2} \
		| samtools view -bS -t ` + conf.RefIndex + ` - \
		| samtools sort - > {o:bam}`
	p := wf.NewProc(name, cmd)
	p.SetOut("bam", conf.OutDir+"/"+conf.SampleID+".bam")
	return &BwaAlign{p}
}

// InReads1 returns the Reads1 in-port
func (p *BwaAlign) InReads1() *sp.InPort { return p.In("reads_1") }

// InReads2 returns the Reads2 in-port
func (p *BwaAlign) InReads2() *sp.InPort { return p.In("reads_2") }

// OutBam returns the Bam out-port
func (p *BwaAlign) OutBam() *sp.OutPort { return p.Out("bam") }
