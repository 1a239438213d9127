package components

import (
	"strconv"

	sp "github.com/scipipe/scipipe"
)

// StarAlign aligns paired-end RNA reads with STAR into a coordinate-sorted
// BAM. Also used for the WASP re-mapping pass, which feeds it the
// remap-fastq files instead of the original reads.
type StarAlign struct {
	*sp.Process
}

// StarAlignConf contains parameters for initializing a StarAlign process
type StarAlignConf struct {
	SampleID  string
	StarIndex string
	Threads   int
	OutDir    string
	// OutInfix distinguishes alignment passes over the same sample,
	// e.g. "" for the first pass and ".remap" for the WASP re-map.
	OutInfix string
	Prefix   string
}

// NewStarAlign returns a new StarAlign process
func NewStarAlign(wf *sp.Workflow, name string, conf StarAlignConf) *StarAlign {
	if conf.Threads == 0 {
		conf.Threads = 4
	}
	cmd := conf.Prefix + `STAR \
		--genomeDir ` + conf.StarIndex + ` \
		--readFilesIn {i:reads_1} {i:reads_2} \
		--runThreadN ` + strconv.Itoa(conf.Threads) + ` \
		--readFilesCommand zcat \
		--outFileNamePrefix $(s={o:bam}; echo ${s%Aligned.sortedByCoord.out.bam}) \
		--outSAMtype BAM SortedByCoordinate`
	p := wf.NewProc(name, cmd)
	p.SetOut("bam", conf.OutDir+"/"+conf.SampleID+conf.OutInfix+".Aligned.sortedByCoord.out.bam")
	return &StarAlign{p}
}

// InReads1 returns the Reads1 in-port
func (p *StarAlign) InReads1() *sp.InPort { return p.In("reads_1") }

// InReads2 returns the Reads2 in-port
func (p *StarAlign) InReads2() *sp.InPort { return p.In("reads_2") }

// OutBam returns the Bam out-port
func (p *StarAlign) OutBam() *sp.OutPort { return p.Out("bam") }
