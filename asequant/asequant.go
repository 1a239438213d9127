// The asequant workflow is the full allele-specific expression pipeline:
// per-sample DNA variant calling into a joint filtered VCF, WASP
// bias-corrected RNA mapping against that VCF, allele-specific read
// counting for DNA and RNA, and the statistical imbalance test producing a
// per-sample imbalance result table.
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

	reg, err := manifest.ParseManifest(cfg.Manifest, manifest.FullPipeline)
	if err != nil {
		log.Fatal(err)
	}
	selected, err := reg.Select(cfg.Samples)
	if err != nil {
		log.Fatal(err)
	}

	wf := NewAseQuantWorkflow(cfg, reg, selected, mode)
	if *plot {
		dotFile := "asequant.dot"
		wf.PlotGraph(dotFile)
		fmt.Println("Wrote workflow graph to:", dotFile)
		return
	}
	wf.Run()
}

// NewAseQuantWorkflow wires the end-to-end ASE pipeline for the selected
// samples. The manifest columns are, in order: dna_fastq_1, dna_fastq_2,
// rna_fastq_1, rna_fastq_2.
func NewAseQuantWorkflow(cfg *config.Config, reg *manifest.Registry, selected []string, mode hpc.RunMode) *sp.Workflow {
	wf := sp.NewWorkflow("asequant", cfg.MaxTasks)

	// Cohort-level tail of the DNA part: joint genotyping over all
	// samples' gVCFs, hard filtering, and HDF5 conversion for WASP
	gvcfS2SS := spcomp.NewStreamToSubStream(wf, "gvcfs_s2ss")

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

	snp2h5 := comp.NewSnp2H5(wf, "snp2h5", comp.Snp2H5Conf{
		WaspDir:   cfg.WaspDir,
		ChromInfo: cfg.Ref.ChromInfo,
		OutDir:    cfg.TmpDir,
		Prefix:    slurmPrefix(cfg, mode, "snp2h5"),
	})
	snp2h5.InVcf().From(filt.OutVcf())

	for _, sampleID := range selected {
		sampleID := sampleID // Local copy, to keep closures off the loop variable
		paths, err := reg.InputPaths(sampleID)
		if err != nil {
			log.Fatal(err)
		}
		cohortID, err := reg.CohortID(sampleID)
		if err != nil {
			log.Fatal(err)
		}
		dnaFq1, dnaFq2, rnaFq1, rnaFq2 := paths[0], paths[1], paths[2], paths[3]

		// ------------------------------------------------------------
		// DNA: align, mark duplicates, call per-sample gVCF
		// ------------------------------------------------------------
		dnaSrc1 := spcomp.NewFileSource(wf, "dna_fastq1_"+sampleID, dnaFq1)
		dnaSrc2 := spcomp.NewFileSource(wf, "dna_fastq2_"+sampleID, dnaFq2)

		alignDNA := comp.NewBwaAlign(wf, "align_dna_"+sampleID, comp.BwaAlignConf{
			SampleID: sampleID,
			RefFasta: cfg.Ref.Fasta,
			RefIndex: cfg.Ref.FastaIndex,
			Threads:  cfg.Slurm.Threads,
			OutDir:   cfg.TmpDir,
			Prefix:   slurmPrefix(cfg, mode, "align_dna_"+sampleID),
		})
		alignDNA.InReads1().From(dnaSrc1.Out())
		alignDNA.InReads2().From(dnaSrc2.Out())

		markDupes := comp.NewMarkDuplicates(wf, "mark_dupes_"+sampleID, comp.MarkDuplicatesConf{
			SampleID:  sampleID,
			PicardJar: cfg.Apps.Picard,
			OutDir:    cfg.TmpDir,
			TmpDir:    cfg.TmpDir,
			Prefix:    slurmPrefix(cfg, mode, "mark_dupes_"+sampleID),
		})
		markDupes.InBam().From(alignDNA.OutBam())

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

		// ------------------------------------------------------------
		// RNA: STAR alignment and WASP bias correction
		// ------------------------------------------------------------
		rnaSrc1 := spcomp.NewFileSource(wf, "rna_fastq1_"+sampleID, rnaFq1)
		rnaSrc2 := spcomp.NewFileSource(wf, "rna_fastq2_"+sampleID, rnaFq2)

		alignRNA := comp.NewStarAlign(wf, "align_rna_"+sampleID, comp.StarAlignConf{
			SampleID:  sampleID,
			StarIndex: cfg.Ref.StarIndex,
			Threads:   cfg.Slurm.Threads,
			OutDir:    cfg.TmpDir,
			Prefix:    slurmPrefix(cfg, mode, "align_rna_"+sampleID),
		})
		alignRNA.InReads1().From(rnaSrc1.Out())
		alignRNA.InReads2().From(rnaSrc2.Out())

		findSNPs := comp.NewFindIntersectingSNPs(wf, "find_intersecting_snps_"+sampleID, comp.FindIntersectingSNPsConf{
			CohortID: cohortID,
			WaspDir:  cfg.WaspDir,
			OutDir:   cfg.TmpDir,
			Prefix:   slurmPrefix(cfg, mode, "find_intersecting_snps_"+sampleID),
		})
		findSNPs.InBam().From(alignRNA.OutBam())
		findSNPs.InSnpTab().From(snp2h5.OutSnpTab())
		findSNPs.InSnpIndex().From(snp2h5.OutSnpIndex())
		findSNPs.InHaplotypes().From(snp2h5.OutHaplotypes())

		remap := comp.NewStarAlign(wf, "remap_rna_"+sampleID, comp.StarAlignConf{
			SampleID:  sampleID,
			StarIndex: cfg.Ref.StarIndex,
			Threads:   cfg.Slurm.Threads,
			OutDir:    cfg.TmpDir,
			OutInfix:  ".remap",
			Prefix:    slurmPrefix(cfg, mode, "remap_rna_"+sampleID),
		})
		remap.InReads1().From(findSNPs.OutRemapFq1())
		remap.InReads2().From(findSNPs.OutRemapFq2())

		filtRemapped := comp.NewFilterRemappedReads(wf, "filter_remapped_"+sampleID, comp.FilterRemappedReadsConf{
			WaspDir: cfg.WaspDir,
			Prefix:  slurmPrefix(cfg, mode, "filter_remapped_"+sampleID),
		})
		filtRemapped.InToRemapBam().From(findSNPs.OutRemapBam())
		filtRemapped.InRemappedBam().From(remap.OutBam())

		keepS2SS := spcomp.NewStreamToSubStream(wf, "keep_s2ss_"+sampleID)
		keepS2SS.In().From(findSNPs.OutKeepBam())
		keepS2SS.In().From(filtRemapped.OutKeepBam())

		merge := comp.NewSamtoolsMerge(wf, "merge_keep_"+sampleID, comp.SamtoolsMergeConf{
			OutPath: cfg.TmpDir + "/" + sampleID + ".keep.merged.bam",
			Prefix:  slurmPrefix(cfg, mode, "merge_keep_"+sampleID),
		})
		merge.InBams().From(keepS2SS.OutSubStream())

		sortKeep := comp.NewSamtoolsSort(wf, "sort_keep_"+sampleID, comp.SamtoolsSortConf{
			Prefix: slurmPrefix(cfg, mode, "sort_keep_"+sampleID),
		})
		sortKeep.InBam().From(merge.OutMergedBam())

		rmdup := comp.NewWaspRmDup(wf, "rmdup_"+sampleID, comp.WaspRmDupConf{
			WaspDir: cfg.WaspDir,
			Prefix:  slurmPrefix(cfg, mode, "rmdup_"+sampleID),
		})
		rmdup.InBam().From(sortKeep.OutSortedBam())

		sortFinal := comp.NewSamtoolsSort(wf, "sort_final_"+sampleID, comp.SamtoolsSortConf{
			Prefix: slurmPrefix(cfg, mode, "sort_final_"+sampleID),
		})
		sortFinal.InBam().From(rmdup.OutBam())

		// ------------------------------------------------------------
		// Allele-specific counting and the imbalance test
		// ------------------------------------------------------------
		countDNA := comp.NewBam2H5(wf, "bam2h5_dna_"+sampleID, comp.Bam2H5Conf{
			SampleID:  sampleID,
			CohortID:  cohortID,
			ReadType:  comp.ReadTypeDNA,
			WaspDir:   cfg.WaspDir,
			ChromInfo: cfg.Ref.ChromInfo,
			OutDir:    cfg.OutDir,
			Prefix:    slurmPrefix(cfg, mode, "bam2h5_dna_"+sampleID),
		})
		countDNA.InBam().From(markDupes.OutBam())
		countDNA.InSnpTab().From(snp2h5.OutSnpTab())
		countDNA.InSnpIndex().From(snp2h5.OutSnpIndex())
		countDNA.InHaplotypes().From(snp2h5.OutHaplotypes())

		countRNA := comp.NewBam2H5(wf, "bam2h5_rna_"+sampleID, comp.Bam2H5Conf{
			SampleID:  sampleID,
			CohortID:  cohortID,
			ReadType:  comp.ReadTypeRNA,
			WaspDir:   cfg.WaspDir,
			ChromInfo: cfg.Ref.ChromInfo,
			OutDir:    cfg.OutDir,
			Prefix:    slurmPrefix(cfg, mode, "bam2h5_rna_"+sampleID),
		})
		countRNA.InBam().From(sortFinal.OutSortedBam())
		countRNA.InSnpTab().From(snp2h5.OutSnpTab())
		countRNA.InSnpIndex().From(snp2h5.OutSnpIndex())
		countRNA.InHaplotypes().From(snp2h5.OutHaplotypes())

		imbalance := comp.NewImbalanceTest(wf, "imbalance_"+sampleID, comp.ImbalanceTestConf{
			SampleID: sampleID,
			Script:   cfg.AseScript,
			GeneGTF:  cfg.Ref.GeneGTF,
			OutDir:   cfg.OutDir,
			Prefix:   slurmPrefix(cfg, mode, "imbalance_"+sampleID),
		})
		imbalance.InDnaCounts().From(countDNA.OutTxtCounts())
		imbalance.InRnaCounts().From(countRNA.OutTxtCounts())
	}

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
