package components

import (
	sp "github.com/scipipe/scipipe"
)

// FilterVariants hard-filters a joint VCF and keeps passing biallelic SNPs,
// the variant class the allele-specific counting steps can use.
type FilterVariants struct {
	*sp.Process
}

// FilterVariantsConf contains parameters for initializing a FilterVariants
// process
type FilterVariantsConf struct {
	Gatk     string
	RefFasta string
	Prefix   string
}

// NewFilterVariants returns a new FilterVariants process
func NewFilterVariants(wf *sp.Workflow, name string, conf FilterVariantsConf) *FilterVariants {
	cmd := conf.Prefix + conf.Gatk + ` VariantFiltration \
		-R ` + conf.RefFasta + ` \
		-V {i:vcf} \
		--filter-expression "QD < 2.0 || FS > 30.0 || MQ < 40.0" \
		--filter-name hard_filter \
		-O {i:vcf}.marked.vcf.gz && \
		` + conf.Gatk + ` SelectVariants \
		-R ` + conf.RefFasta + ` \
		-V {i:vcf}.marked.vcf.gz \
		--exclude-filtered \
		--select-type-to-include SNP \
		--restrict-alleles-to BIALLELIC \
		-O {o:vcf}`
	p := wf.NewProc(name, cmd)
	p.SetOut("vcf", "{i:vcf|%.vcf.gz}.filt.vcf.gz")
	return &FilterVariants{p}
}

// InVcf returns the Vcf in-port
func (p *FilterVariants) InVcf() *sp.InPort { return p.In("vcf") }

// OutVcf returns the Vcf out-port
func (p *FilterVariants) OutVcf() *sp.OutPort { return p.Out("vcf") }
