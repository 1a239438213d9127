package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testYaml = `
manifest: samples.tsv
out_dir: out
wasp_dir: /opt/WASP
max_tasks: 8
samples:
  - S1
  - S2
ref:
  fasta: ref/genome.fa
  star_index: ref/star
slurm:
  project: snic2021-1-123
  time: 12h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asewf.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYaml))
	assert.NoError(t, err)

	assert.Equal(t, "samples.tsv", cfg.Manifest)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, "/opt/WASP", cfg.WaspDir)
	assert.Equal(t, 8, cfg.MaxTasks)
	assert.Equal(t, []string{"S1", "S2"}, cfg.Samples)
	assert.Equal(t, "ref/genome.fa", cfg.Ref.Fasta)
	assert.Equal(t, "ref/star", cfg.Ref.StarIndex)
	assert.Equal(t, "snic2021-1-123", cfg.Slurm.Project)
	assert.Equal(t, "12h", cfg.Slurm.Time)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)

	assert.Equal(t, "results", cfg.OutDir)
	assert.Equal(t, "tmp", cfg.TmpDir)
	assert.Equal(t, 4, cfg.MaxTasks)
	assert.Equal(t, "local", cfg.Runmode)
	assert.Equal(t, "gatk", cfg.Apps.Gatk)
	assert.Equal(t, "core", cfg.Slurm.Partition)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ASEWF_MANIFEST", "other.tsv")
	t.Setenv("ASEWF_MAX_TASKS", "16")
	t.Setenv("ASEWF_SAMPLES", "S3,S4")

	cfg, err := Load(writeConfig(t, testYaml))
	assert.NoError(t, err)

	assert.Equal(t, "other.tsv", cfg.Manifest)
	assert.Equal(t, 16, cfg.MaxTasks)
	assert.Equal(t, []string{"S3", "S4"}, cfg.Samples)
	// Untouched yaml values survive the env pass
	assert.Equal(t, "out", cfg.OutDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
