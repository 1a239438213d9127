package components

import (
	sp "github.com/scipipe/scipipe"
)

// SamtoolsMerge merges a substream of BAMs into one file.
type SamtoolsMerge struct {
	*sp.Process
}

// SamtoolsMergeConf contains parameters for initializing a SamtoolsMerge
// process
type SamtoolsMergeConf struct {
	OutPath string
	Prefix  string
}

// NewSamtoolsMerge returns a new SamtoolsMerge process
func NewSamtoolsMerge(wf *sp.Workflow, name string, conf SamtoolsMergeConf) *SamtoolsMerge {
	p := wf.NewProc(name, conf.Prefix+"samtools merge -f {o:mergedbam} {i:bams:r: }")
	p.SetOut("mergedbam", conf.OutPath)
	return &SamtoolsMerge{p}
}

// InBams returns the Bams in-port
func (p *SamtoolsMerge) InBams() *sp.InPort { return p.In("bams") }

// OutMergedBam returns the MergedBam out-port
func (p *SamtoolsMerge) OutMergedBam() *sp.OutPort { return p.Out("mergedbam") }

// SamtoolsSort coordinate-sorts a BAM.
type SamtoolsSort struct {
	*sp.Process
}

// SamtoolsSortConf contains parameters for initializing a SamtoolsSort
// process
type SamtoolsSortConf struct {
	Prefix string
}

// NewSamtoolsSort returns a new SamtoolsSort process
func NewSamtoolsSort(wf *sp.Workflow, name string, conf SamtoolsSortConf) *SamtoolsSort {
	p := wf.NewProc(name, conf.Prefix+"samtools sort {i:bam} > {o:sortedbam}")
	p.SetOut("sortedbam", "{i:bam|%.bam}.sort.bam")
	return &SamtoolsSort{p}
}

// InBam returns the Bam in-port
func (p *SamtoolsSort) InBam() *sp.InPort { return p.In("bam") }

// OutSortedBam returns the SortedBam out-port
func (p *SamtoolsSort) OutSortedBam() *sp.OutPort { return p.Out("sortedbam") }

// SamtoolsIndex indexes a coordinate-sorted BAM.
type SamtoolsIndex struct {
	*sp.Process
}

// SamtoolsIndexConf contains parameters for initializing a SamtoolsIndex
// process
type SamtoolsIndexConf struct {
	Prefix string
}

// NewSamtoolsIndex returns a new SamtoolsIndex process
func NewSamtoolsIndex(wf *sp.Workflow, name string, conf SamtoolsIndexConf) *SamtoolsIndex {
	p := wf.NewProc(name, conf.Prefix+"samtools index {i:bam} {o:bai}")
	p.SetOut("bai", "{i:bam}.bai")
	return &SamtoolsIndex{p}
}

// InBam returns the Bam in-port
func (p *SamtoolsIndex) InBam() *sp.InPort { return p.In("bam") }

// OutBai returns the Bai out-port
func (p *SamtoolsIndex) OutBai() *sp.OutPort { return p.Out("bai") }
