package components

import (
	sp "github.com/scipipe/scipipe"
)

// ReadType says which kind of sequencing reads a BAM holds.
type ReadType string

const (
	ReadTypeDNA ReadType = "dna"
	ReadTypeRNA ReadType = "rna"
)

// Bam2H5 counts allele-specific reads at each SNP of one cohort
// individual in one sample BAM, writing the WASP HDF5 count files plus a
// flat text count table.
type Bam2H5 struct {
	*sp.Process
}

// Bam2H5Conf contains parameters for initializing a Bam2H5 process
type Bam2H5Conf struct {
	SampleID  string
	CohortID  string
	ReadType  ReadType
	WaspDir   string
	ChromInfo string
	OutDir    string
	Prefix    string
}

// NewBam2H5 returns a new Bam2H5 process
func NewBam2H5(wf *sp.Workflow, name string, conf Bam2H5Conf) *Bam2H5 {
	cmd := conf.Prefix + `python ` + conf.WaspDir + `/CHT/bam2h5.py \
		--chrom ` + conf.ChromInfo + ` \
		--snp_index {i:snp_index} \
		--snp_tab {i:snp_tab} \
		--haplotype {i:haplotypes} \
		--individual ` + conf.CohortID + ` \
		--ref_as_counts {o:ref_counts} \
		--alt_as_counts {o:alt_counts} \
		--other_as_counts {o:other_counts} \
		--read_counts {o:read_counts} \
		--txt_counts {o:txt_counts} \
		{i:bam}`
	p := wf.NewProc(name, cmd)
	base := conf.OutDir + "/" + conf.SampleID + "." + string(conf.ReadType)
	p.SetOut("ref_counts", base+".ref_as_counts.h5")
	p.SetOut("alt_counts", base+".alt_as_counts.h5")
	p.SetOut("other_counts", base+".other_as_counts.h5")
	p.SetOut("read_counts", base+".read_counts.h5")
	p.SetOut("txt_counts", base+".counts.txt.gz")
	return &Bam2H5{p}
}

// InBam returns the Bam in-port
func (p *Bam2H5) InBam() *sp.InPort { return p.In("bam") }

// InSnpTab returns the SnpTab in-port
func (p *Bam2H5) InSnpTab() *sp.InPort { return p.In("snp_tab") }

// InSnpIndex returns the SnpIndex in-port
func (p *Bam2H5) InSnpIndex() *sp.InPort { return p.In("snp_index") }

// InHaplotypes returns the Haplotypes in-port
func (p *Bam2H5) InHaplotypes() *sp.InPort { return p.In("haplotypes") }

// OutRefCounts returns the RefCounts out-port
func (p *Bam2H5) OutRefCounts() *sp.OutPort { return p.Out("ref_counts") }

// OutAltCounts returns the AltCounts out-port
func (p *Bam2H5) OutAltCounts() *sp.OutPort { return p.Out("alt_counts") }

// OutOtherCounts returns the OtherCounts out-port
func (p *Bam2H5) OutOtherCounts() *sp.OutPort { return p.Out("other_counts") }

// OutReadCounts returns the ReadCounts out-port
func (p *Bam2H5) OutReadCounts() *sp.OutPort { return p.Out("read_counts") }

// OutTxtCounts returns the TxtCounts out-port
func (p *Bam2H5) OutTxtCounts() *sp.OutPort { return p.Out("txt_counts") }
