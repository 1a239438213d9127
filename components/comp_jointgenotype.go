package components

import (
	sp "github.com/scipipe/scipipe"
)

// JointGenotype combines the per-sample gVCFs of a run and genotypes them
// jointly into one cohort VCF.
type JointGenotype struct {
	*sp.Process
}

// JointGenotypeConf contains parameters for initializing a JointGenotype
// process
type JointGenotypeConf struct {
	RunID    string
	Gatk     string
	RefFasta string
	OutDir   string
	Prefix   string
}

// NewJointGenotype returns a new JointGenotype process
func NewJointGenotype(wf *sp.Workflow, name string, conf JointGenotypeConf) *JointGenotype {
	combined := conf.OutDir + "/" + conf.RunID + ".combined.g.vcf.gz"
	cmd := conf.Prefix + conf.Gatk + ` CombineGVCFs \
		-R ` + conf.RefFasta + ` \
		$(printf ' -V %s' {i:gvcfs:r: }) \
		-O ` + combined + ` && \
		` + conf.Gatk + ` GenotypeGVCFs \
		-R ` + conf.RefFasta + ` \
		-V ` + combined + ` \
		-O {o:vcf}`
	p := wf.NewProc(name, cmd)
	p.SetOut("vcf", conf.OutDir+"/"+conf.RunID+".joint.vcf.gz")
	return &JointGenotype{p}
}

// InGvcfs returns the Gvcfs in-port (a substream of all samples' gVCFs)
func (p *JointGenotype) InGvcfs() *sp.InPort { return p.In("gvcfs") }

// OutVcf returns the Vcf out-port
func (p *JointGenotype) OutVcf() *sp.OutPort { return p.Out("vcf") }
