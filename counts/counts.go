// The counts workflow converts the joint VCF to WASP's HDF5 SNP files and
// counts allele-specific reads per sample, once for the DNA BAM and once
// for the bias-filtered RNA BAM.
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

	reg, err := manifest.ParseManifest(cfg.Manifest, manifest.Counts)
	if err != nil {
		log.Fatal(err)
	}
	selected, err := reg.Select(cfg.Samples)
	if err != nil {
		log.Fatal(err)
	}

	wf := NewCountsWorkflow(cfg, reg, selected, mode)
	if *plot {
		dotFile := "counts.dot"
		wf.PlotGraph(dotFile)
		fmt.Println("Wrote workflow graph to:", dotFile)
		return
	}
	wf.Run()
}

// NewCountsWorkflow wires the allele-specific read counting pipeline for
// the selected samples.
func NewCountsWorkflow(cfg *config.Config, reg *manifest.Registry, selected []string, mode hpc.RunMode) *sp.Workflow {
	wf := sp.NewWorkflow("counts", cfg.MaxTasks)

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

		for readType, bamPath := range map[comp.ReadType]string{
			comp.ReadTypeDNA: paths[0],
			comp.ReadTypeRNA: paths[1],
		} {
			procName := "bam2h5_" + string(readType) + "_" + sampleID
			bamSrc := spcomp.NewFileSource(wf, string(readType)+"_bam_"+sampleID, bamPath)

			bam2h5 := comp.NewBam2H5(wf, procName, comp.Bam2H5Conf{
				SampleID:  sampleID,
				CohortID:  cohortID,
				ReadType:  readType,
				WaspDir:   cfg.WaspDir,
				ChromInfo: cfg.Ref.ChromInfo,
				OutDir:    cfg.OutDir,
				Prefix:    slurmPrefix(cfg, mode, procName),
			})
			bam2h5.InBam().From(bamSrc.Out())
			bam2h5.InSnpTab().From(snp2h5.OutSnpTab())
			bam2h5.InSnpIndex().From(snp2h5.OutSnpIndex())
			bam2h5.InHaplotypes().From(snp2h5.OutHaplotypes())
		}
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
