// Package config loads the pipeline configuration: a YAML file, overridden
// by ASEWF_* environment variables, with defaults for anything left unset.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the shared configuration surface of all pipeline variants.
// Only the fields a given workflow uses need to be set for that workflow.
type Config struct {
	Manifest  string   `yaml:"manifest" envconfig:"ASEWF_MANIFEST"`
	OutDir    string   `yaml:"out_dir" envconfig:"ASEWF_OUT_DIR"`
	TmpDir    string   `yaml:"tmp_dir" envconfig:"ASEWF_TMP_DIR"`
	WaspDir   string   `yaml:"wasp_dir" envconfig:"ASEWF_WASP_DIR"`
	Vcf       string   `yaml:"vcf" envconfig:"ASEWF_VCF"`
	AseScript string   `yaml:"ase_script" envconfig:"ASEWF_ASE_SCRIPT"`
	MaxTasks  int      `yaml:"max_tasks" envconfig:"ASEWF_MAX_TASKS"`
	Samples   []string `yaml:"samples" envconfig:"ASEWF_SAMPLES"`
	Runmode   string   `yaml:"runmode" envconfig:"ASEWF_RUNMODE"`

	Ref struct {
		Fasta       string `yaml:"fasta" envconfig:"ASEWF_REF_FASTA"`
		FastaIndex  string `yaml:"fasta_index" envconfig:"ASEWF_REF_FASTA_INDEX"`
		DbSNP       string `yaml:"dbsnp" envconfig:"ASEWF_REF_DBSNP"`
		KnownIndels string `yaml:"known_indels" envconfig:"ASEWF_REF_KNOWN_INDELS"`
		StarIndex   string `yaml:"star_index" envconfig:"ASEWF_REF_STAR_INDEX"`
		GeneGTF     string `yaml:"gene_gtf" envconfig:"ASEWF_REF_GENE_GTF"`
		ChromInfo   string `yaml:"chrom_info" envconfig:"ASEWF_REF_CHROM_INFO"`
	} `yaml:"ref"`

	Apps struct {
		Gatk   string `yaml:"gatk" envconfig:"ASEWF_GATK"`
		Picard string `yaml:"picard" envconfig:"ASEWF_PICARD"`
	} `yaml:"apps"`

	Slurm struct {
		Project   string `yaml:"project" envconfig:"ASEWF_SLURM_PROJECT"`
		Partition string `yaml:"partition" envconfig:"ASEWF_SLURM_PARTITION"`
		Time      string `yaml:"time" envconfig:"ASEWF_SLURM_TIME"`
		Threads   int    `yaml:"threads" envconfig:"ASEWF_SLURM_THREADS"`
	} `yaml:"slurm"`
}

// Load reads the YAML config at path (skipped when path is empty), applies
// environment overrides and fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = "results"
	}
	if c.TmpDir == "" {
		c.TmpDir = "tmp"
	}
	if c.MaxTasks == 0 {
		c.MaxTasks = 4
	}
	if c.Runmode == "" {
		c.Runmode = "local"
	}
	if c.AseScript == "" {
		c.AseScript = "scripts/ase_betabinom.R"
	}
	if c.Apps.Gatk == "" {
		c.Apps.Gatk = "gatk"
	}
	if c.Apps.Picard == "" {
		c.Apps.Picard = "picard.jar"
	}
	if c.Slurm.Partition == "" {
		c.Slurm.Partition = "core"
	}
	if c.Slurm.Time == "" {
		c.Slurm.Time = "4h"
	}
	if c.Slurm.Threads == 0 {
		c.Slurm.Threads = 4
	}
}
