package components

import (
	"strconv"

	sp "github.com/scipipe/scipipe"
)

// HaplotypeCaller calls variants on one sample's DNA BAM into a gVCF.
type HaplotypeCaller struct {
	*sp.Process
}

// HaplotypeCallerConf contains parameters for initializing a
// HaplotypeCaller process
type HaplotypeCallerConf struct {
	SampleID string
	Gatk     string
	RefFasta string
	DbSNP    string
	Threads  int
	OutDir   string
	Prefix   string
}

// NewHaplotypeCaller returns a new HaplotypeCaller process
func NewHaplotypeCaller(wf *sp.Workflow, name string, conf HaplotypeCallerConf) *HaplotypeCaller {
	if conf.Threads == 0 {
		conf.Threads = 4
	}
	cmd := conf.Prefix + conf.Gatk + ` HaplotypeCaller \
		-R ` + conf.RefFasta + ` \
		-I {i:bam} \
		-D ` + conf.DbSNP + ` \
		-ERC GVCF \
		--native-pair-hmm-threads ` + strconv.Itoa(conf.Threads) + ` \
		-O {o:gvcf}`
	p := wf.NewProc(name, cmd)
	p.SetOut("gvcf", conf.OutDir+"/"+conf.SampleID+".g.vcf.gz")
	return &HaplotypeCaller{p}
}

// InBam returns the Bam in-port
func (p *HaplotypeCaller) InBam() *sp.InPort { return p.In("bam") }

// OutGvcf returns the Gvcf out-port
func (p *HaplotypeCaller) OutGvcf() *sp.OutPort { return p.Out("gvcf") }
