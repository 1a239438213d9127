// The mapping workflow aligns per-sample RNA fastq pairs with STAR and
// removes allelic mapping bias with the WASP toolkit: reads overlapping
// the cohort individual's SNPs are re-mapped with flipped alleles, reads
// whose mapping depends on the allele are dropped, and duplicates are
// removed without reference bias. The joint VCF from the variantcalling
// workflow is a required input.
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

	reg, err := manifest.ParseManifest(cfg.Manifest, manifest.Mapping)
	if err != nil {
		log.Fatal(err)
	}
	selected, err := reg.Select(cfg.Samples)
	if err != nil {
		log.Fatal(err)
	}

	wf := NewMappingWorkflow(cfg, reg, selected, mode)
	if *plot {
		dotFile := "mapping.dot"
		wf.PlotGraph(dotFile)
		fmt.Println("Wrote workflow graph to:", dotFile)
		return
	}
	wf.Run()
}

// NewMappingWorkflow wires the WASP bias-corrected RNA mapping pipeline
// for the selected samples.
func NewMappingWorkflow(cfg *config.Config, reg *manifest.Registry, selected []string, mode hpc.RunMode) *sp.Workflow {
	wf := sp.NewWorkflow("mapping", cfg.MaxTasks)

	// SNP HDF5 conversion runs once; every sample reads its outputs
	vcfSrc := spcomp.NewFileSource(wf, "joint_vcf", cfg.Vcf)
	snp2h5 := comp.NewSnp2H5(wf, "snp2h5", comp.Snp2H5Conf{
		WaspDir:   cfg.WaspDir,
		ChromInfo: cfg.Ref.ChromInfo,
		OutDir:    cfg.TmpDir,
		Prefix:    slurmPrefix(cfg, mode, "snp2h5"),
	})
	snp2h5.InVcf().From(vcfSrc.Out())

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

		readsSrc1 := spcomp.NewFileSource(wf, "rna_fastq1_"+sampleID, paths[0])
		readsSrc2 := spcomp.NewFileSource(wf, "rna_fastq2_"+sampleID, paths[1])

		align := comp.NewStarAlign(wf, "align_rna_"+sampleID, comp.StarAlignConf{
			SampleID:  sampleID,
			StarIndex: cfg.Ref.StarIndex,
			Threads:   cfg.Slurm.Threads,
			OutDir:    cfg.TmpDir,
			Prefix:    slurmPrefix(cfg, mode, "align_rna_"+sampleID),
		})
		align.InReads1().From(readsSrc1.Out())
		align.InReads2().From(readsSrc2.Out())

		findSNPs := comp.NewFindIntersectingSNPs(wf, "find_intersecting_snps_"+sampleID, comp.FindIntersectingSNPsConf{
			CohortID: cohortID,
			WaspDir:  cfg.WaspDir,
			OutDir:   cfg.TmpDir,
			Prefix:   slurmPrefix(cfg, mode, "find_intersecting_snps_"+sampleID),
		})
		findSNPs.InBam().From(align.OutBam())
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

		sort := comp.NewSamtoolsSort(wf, "sort_keep_"+sampleID, comp.SamtoolsSortConf{
			Prefix: slurmPrefix(cfg, mode, "sort_keep_"+sampleID),
		})
		sort.InBam().From(merge.OutMergedBam())

		rmdup := comp.NewWaspRmDup(wf, "rmdup_"+sampleID, comp.WaspRmDupConf{
			WaspDir: cfg.WaspDir,
			Prefix:  slurmPrefix(cfg, mode, "rmdup_"+sampleID),
		})
		rmdup.InBam().From(sort.OutSortedBam())

		sortFinal := comp.NewSamtoolsSort(wf, "sort_final_"+sampleID, comp.SamtoolsSortConf{
			Prefix: slurmPrefix(cfg, mode, "sort_final_"+sampleID),
		})
		sortFinal.InBam().From(rmdup.OutBam())

		index := comp.NewSamtoolsIndex(wf, "index_final_"+sampleID, comp.SamtoolsIndexConf{
			Prefix: slurmPrefix(cfg, mode, "index_final_"+sampleID),
		})
		index.InBam().From(sortFinal.OutSortedBam())
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
