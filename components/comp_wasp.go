package components

import (
	"path/filepath"
	"strings"

	sp "github.com/scipipe/scipipe"
)

// FindIntersectingSNPs runs the WASP mapping-bias step that splits an RNA
// BAM into reads that can be kept as-is and reads overlapping SNPs of the
// sample's cohort individual, which must be re-mapped with flipped
// alleles.
type FindIntersectingSNPs struct {
	*sp.Process
}

// FindIntersectingSNPsConf contains parameters for initializing a
// FindIntersectingSNPs process
type FindIntersectingSNPsConf struct {
	CohortID string
	WaspDir  string
	OutDir   string
	Prefix   string
}

// NewFindIntersectingSNPs returns a new FindIntersectingSNPs process
func NewFindIntersectingSNPs(wf *sp.Workflow, name string, conf FindIntersectingSNPsConf) *FindIntersectingSNPs {
	cmd := conf.Prefix + `python ` + conf.WaspDir + `/mapping/find_intersecting_snps.py \
		--is_paired_end \
		--is_sorted \
		--output_dir ` + conf.OutDir + ` \
		--snp_tab {i:snp_tab} \
		--snp_index {i:snp_index} \
		--haplotype {i:haplotypes} \
		--samples ` + conf.CohortID + ` \
		{i:bam}`
	p := wf.NewProc(name, cmd)
	// WASP derives its output names from the input BAM's basename
	base := func(t *sp.Task) string {
		return conf.OutDir + "/" + strings.TrimSuffix(filepath.Base(t.InPath("bam")), ".bam")
	}
	p.SetOutFunc("keep_bam", func(t *sp.Task) string { return base(t) + ".keep.bam" })
	p.SetOutFunc("remap_bam", func(t *sp.Task) string { return base(t) + ".to.remap.bam" })
	p.SetOutFunc("remap_fq1", func(t *sp.Task) string { return base(t) + ".remap.fq1.gz" })
	p.SetOutFunc("remap_fq2", func(t *sp.Task) string { return base(t) + ".remap.fq2.gz" })
	return &FindIntersectingSNPs{p}
}

// InBam returns the Bam in-port
func (p *FindIntersectingSNPs) InBam() *sp.InPort { return p.In("bam") }

// InSnpTab returns the SnpTab in-port
func (p *FindIntersectingSNPs) InSnpTab() *sp.InPort { return p.In("snp_tab") }

// InSnpIndex returns the SnpIndex in-port
func (p *FindIntersectingSNPs) InSnpIndex() *sp.InPort { return p.In("snp_index") }

// InHaplotypes returns the Haplotypes in-port
func (p *FindIntersectingSNPs) InHaplotypes() *sp.InPort { return p.In("haplotypes") }

// OutKeepBam returns the KeepBam out-port
func (p *FindIntersectingSNPs) OutKeepBam() *sp.OutPort { return p.Out("keep_bam") }

// OutRemapBam returns the RemapBam out-port
func (p *FindIntersectingSNPs) OutRemapBam() *sp.OutPort { return p.Out("remap_bam") }

// OutRemapFq1 returns the RemapFq1 out-port
func (p *FindIntersectingSNPs) OutRemapFq1() *sp.OutPort { return p.Out("remap_fq1") }

// OutRemapFq2 returns the RemapFq2 out-port
func (p *FindIntersectingSNPs) OutRemapFq2() *sp.OutPort { return p.Out("remap_fq2") }

// FilterRemappedReads keeps the re-mapped reads that landed on their
// original position, discarding reads whose mapping is allele-dependent.
type FilterRemappedReads struct {
	*sp.Process
}

// FilterRemappedReadsConf contains parameters for initializing a
// FilterRemappedReads process
type FilterRemappedReadsConf struct {
	WaspDir string
	Prefix  string
}

// NewFilterRemappedReads returns a new FilterRemappedReads process
func NewFilterRemappedReads(wf *sp.Workflow, name string, conf FilterRemappedReadsConf) *FilterRemappedReads {
	cmd := conf.Prefix + `python ` + conf.WaspDir + `/mapping/filter_remapped_reads.py \
		{i:to_remap_bam} {i:remapped_bam} {o:keep_bam}`
	p := wf.NewProc(name, cmd)
	p.SetOut("keep_bam", "{i:to_remap_bam|%.to.remap.bam}.remap.keep.bam")
	return &FilterRemappedReads{p}
}

// InToRemapBam returns the ToRemapBam in-port
func (p *FilterRemappedReads) InToRemapBam() *sp.InPort { return p.In("to_remap_bam") }

// InRemappedBam returns the RemappedBam in-port
func (p *FilterRemappedReads) InRemappedBam() *sp.InPort { return p.In("remapped_bam") }

// OutKeepBam returns the KeepBam out-port
func (p *FilterRemappedReads) OutKeepBam() *sp.OutPort { return p.Out("keep_bam") }

// WaspRmDup removes duplicate read pairs without reference bias, using
// WASP's random duplicate removal instead of samtools/picard.
type WaspRmDup struct {
	*sp.Process
}

// WaspRmDupConf contains parameters for initializing a WaspRmDup process
type WaspRmDupConf struct {
	WaspDir string
	Prefix  string
}

// NewWaspRmDup returns a new WaspRmDup process
func NewWaspRmDup(wf *sp.Workflow, name string, conf WaspRmDupConf) *WaspRmDup {
	cmd := conf.Prefix + `python ` + conf.WaspDir + `/mapping/rmdup_pe.py {i:bam} {o:bam}`
	p := wf.NewProc(name, cmd)
	p.SetOut("bam", "{i:bam|%.bam}.rmdup.bam")
	return &WaspRmDup{p}
}

// InBam returns the Bam in-port
func (p *WaspRmDup) InBam() *sp.InPort { return p.In("bam") }

// OutBam returns the Bam out-port
func (p *WaspRmDup) OutBam() *sp.OutPort { return p.Out("bam") }
