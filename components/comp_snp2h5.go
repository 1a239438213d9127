package components

import (
	sp "github.com/scipipe/scipipe"
)

// Snp2H5 converts a (joint) VCF into the HDF5 SNP files the WASP toolkit
// reads: snp_index, snp_tab and haplotypes. Run once per pipeline
// invocation; every per-sample step consumes its outputs.
type Snp2H5 struct {
	*sp.Process
}

// Snp2H5Conf contains parameters for initializing a Snp2H5 process
type Snp2H5Conf struct {
	WaspDir   string
	ChromInfo string
	OutDir    string
	Prefix    string
}

// NewSnp2H5 returns a new Snp2H5 process
func NewSnp2H5(wf *sp.Workflow, name string, conf Snp2H5Conf) *Snp2H5 {
	cmd := conf.Prefix + conf.WaspDir + `/snp2h5/snp2h5 \
		--chrom ` + conf.ChromInfo + ` \
		--format vcf \
		--haplotype {o:haplotypes} \
		--snp_index {o:snp_index} \
		--snp_tab {o:snp_tab} \
		{i:vcf}`
	p := wf.NewProc(name, cmd)
	p.SetOut("haplotypes", conf.OutDir+"/haplotypes.h5")
	p.SetOut("snp_index", conf.OutDir+"/snp_index.h5")
	p.SetOut("snp_tab", conf.OutDir+"/snp_tab.h5")
	return &Snp2H5{p}
}

// InVcf returns the Vcf in-port
func (p *Snp2H5) InVcf() *sp.InPort { return p.In("vcf") }

// OutHaplotypes returns the Haplotypes out-port
func (p *Snp2H5) OutHaplotypes() *sp.OutPort { return p.Out("haplotypes") }

// OutSnpIndex returns the SnpIndex out-port
func (p *Snp2H5) OutSnpIndex() *sp.OutPort { return p.Out("snp_index") }

// OutSnpTab returns the SnpTab out-port
func (p *Snp2H5) OutSnpTab() *sp.OutPort { return p.Out("snp_tab") }
