// The variantcalling workflow goes from per-sample DNA fastq pairs to a
// joint, hard-filtered SNP VCF: bwa alignment, duplicate marking,
// per-sample gVCF calling and joint genotyping over the whole cohort.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	sp "github.com/scipipe/scipipe"
	spcomp "github.com/scipipe/scipipe/components"

	comp "github.com/ase-seq/asewf/components"
	"github.com/ase-seq/asewf/config"
	"github.com/ase-seq/asewf/hpc"
	"github.com/ase-seq/asewf/manifest"
)

var (
	configFile = flag.String("config", "asewf.yml", "Path to the pipeline config file")
	maxTasks   = flag.Int("maxtasks", 0, "Max number of concurrent tasks (overrides config)")
	samples    = flag.String("samples", "", "Comma-separated subset of sample ids to run")
	plot       = flag.Bool("plot", false, "Plot the workflow graph and exit")
)

func main() {
	flag.Parse()
	sp.InitLogInfo()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *maxTasks > 0 {
		cfg.MaxTasks = *maxTasks
	}
	if *samples != "" {
		cfg.Samples = strings.Split(*samples, ",")
	}
	mode, err := hpc.ParseRunMode(cfg.Runmode)
	if err != nil {
		log.Fatal(err)
	}

	// Resolve the manifest before any process is created, so a bad
	// manifest never leaves a half-scheduled run behind
	reg, err := manifest.ParseManifest(cfg.Manifest, manifest.VariantCalling)
	if err != nil {
		log.Fatal(err)
	}
	selected, err := reg.Select(cfg.Samples)
	if err != nil {
		log.Fatal(err)
	}

	wf := NewVariantCallingWorkflow(cfg, reg, selected, mode)
	if *plot {
		dotFile := "variantcalling.dot"
		wf.PlotGraph(dotFile)
		fmt.Println("Wrote workflow graph to:", dotFile)
		return
	}
	wf.Run()
}

// NewVariantCallingWorkflow wires the DNA variant-calling pipeline for the
// selected samples.
func NewVariantCallingWorkflow(cfg *config.Config, reg *manifest.Registry, selected []string, mode hpc.RunMode) *sp.Workflow {
	wf := sp.NewWorkflow("variantcalling", cfg.MaxTasks)

	gvcfS2SS := spcomp.NewStreamToSubStream(wf, "gvcfs_s2ss")

	for _, sampleID := range selected {
		sampleID := sampleID // Local copy, to keep closures off the loop variable
		paths, err := reg.InputPaths(sampleID)
		if err != nil {
			log.Fatal(err)
		}

		readsSrc1 := spcomp.NewFileSource(wf, "dna_fastq1_"+sampleID, paths[0])
		readsSrc2 := spcomp.NewFileSource(wf, "dna_fastq2_"+sampleID, paths[1])

		align := comp.NewBwaAlign(wf, "align_dna_"+sampleID, comp.BwaAlignConf{
			SampleID: sampleID,
			RefFasta: cfg.Ref.Fasta,
			RefIndex: cfg.Ref.FastaIndex,
			Threads:  cfg.Slurm.Threads,
			OutDir:   cfg.TmpDir,
			Prefix:   slurmPrefix(cfg, mode, "align_dna_"+sampleID),
		})
		align.InReads1().From(readsSrc1.Out())
		align.InReads2().From(readsSrc2.Out())

		markDupes := comp.NewMarkDuplicates(wf, "mark_dupes_"+sampleID, comp.MarkDuplicatesConf{
			SampleID:  sampleID,
			PicardJar: cfg.Apps.Picard,
			OutDir:    cfg.TmpDir,
			TmpDir:    cfg.TmpDir,
			Prefix:    slurmPrefix(cfg, mode, "mark_dupes_"+sampleID),
		})
		markDupes.InBam().From(align.OutBam())

		hapCall := comp.NewHaplotypeCaller(wf, "haplotype_caller_"+sampleID, comp.HaplotypeCallerConf{
			SampleID: sampleID,
			Gatk:     cfg.Apps.Gatk,
			RefFasta: cfg.Ref.Fasta,
			DbSNP:    cfg.Ref.DbSNP,
			Threads:  cfg.Slurm.Threads,
			OutDir:   cfg.TmpDir,
			Prefix:   slurmPrefix(cfg, mode, "haplotype_caller_"+sampleID),
		})
		hapCall.InBam().From(markDupes.OutBam())

		gvcfS2SS.In().From(hapCall.OutGvcf())
	}

	joint := comp.NewJointGenotype(wf, "joint_genotype", comp.JointGenotypeConf{
		RunID:    "cohort",
		Gatk:     cfg.Apps.Gatk,
		RefFasta: cfg.Ref.Fasta,
		OutDir:   cfg.OutDir,
		Prefix:   slurmPrefix(cfg, mode, "joint_genotype"),
	})
	joint.InGvcfs().From(gvcfS2SS.OutSubStream())

	filt := comp.NewFilterVariants(wf, "filter_variants", comp.FilterVariantsConf{
		Gatk:     cfg.Apps.Gatk,
		RefFasta: cfg.Ref.Fasta,
		Prefix:   slurmPrefix(cfg, mode, "filter_variants"),
	})
	filt.InVcf().From(joint.OutVcf())

	return wf
}

func slurmPrefix(cfg *config.Config, mode hpc.RunMode, jobName string) string {
	dur, err := hpc.ParseDuration(cfg.Slurm.Time)
	if err != nil {
		log.Fatal(err)
	}
	si := hpc.SlurmInfo{
		Project:   cfg.Slurm.Project,
		Partition: hpc.PartitionType(cfg.Slurm.Partition),
		Cores:     cfg.Slurm.Threads,
		Time:      dur,
		JobName:   jobName,
		Threads:   cfg.Slurm.Threads,
	}
	return si.CommandPrefix(mode)
}
