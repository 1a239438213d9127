package components

import (
	sp "github.com/scipipe/scipipe"
)

// ImbalanceTest runs the statistical imbalance script over one sample's
// paired DNA/RNA count tables, producing the per-sample allelic imbalance
// result table.
type ImbalanceTest struct {
	*sp.Process
}

// ImbalanceTestConf contains parameters for initializing an ImbalanceTest
// process
type ImbalanceTestConf struct {
	SampleID string
	Script   string
	GeneGTF  string
	OutDir   string
	Prefix   string
}

// NewImbalanceTest returns a new ImbalanceTest process
func NewImbalanceTest(wf *sp.Workflow, name string, conf ImbalanceTestConf) *ImbalanceTest {
	cmd := conf.Prefix + `Rscript ` + conf.Script + ` \
		--dna-counts {i:dna_counts} \
		--rna-counts {i:rna_counts} \
		--genes ` + conf.GeneGTF + ` \
		--out {o:table}`
	p := wf.NewProc(name, cmd)
	p.SetOut("table", conf.OutDir+"/"+conf.SampleID+".imbalance.tsv")
	return &ImbalanceTest{p}
}

// InDnaCounts returns the DnaCounts in-port
func (p *ImbalanceTest) InDnaCounts() *sp.InPort { return p.In("dna_counts") }

// InRnaCounts returns the RnaCounts in-port
func (p *ImbalanceTest) InRnaCounts() *sp.InPort { return p.In("rna_counts") }

// OutTable returns the Table out-port
func (p *ImbalanceTest) OutTable() *sp.OutPort { return p.Out("table") }
