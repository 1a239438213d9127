// Package hpc wraps shell commands for execution on a SLURM cluster.
package hpc

import (
	"fmt"
	"time"
)

type PartitionType string

const (
	PartitionCore PartitionType = "core"
	PartitionNode PartitionType = "node"
)

type RunMode int

const (
	RunModeLocal RunMode = iota
	RunModeHPC
)

// ParseRunMode maps the runmode config value to a RunMode.
func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "", "local":
		return RunModeLocal, nil
	case "hpc", "slurm":
		return RunModeHPC, nil
	}
	return RunModeLocal, fmt.Errorf("unknown runmode: %s", s)
}

// SlurmInfo contains info needed to launch a job on a SLURM cluster
type SlurmInfo struct {
	Project   string
	Partition PartitionType
	Cores     int
	Time      time.Duration
	JobName   string
	Threads   int
}

func (si SlurmInfo) AsSallocString() string {
	return fmt.Sprintf("salloc -A %s -p %s -n %d -t %s -J %s srun -n 1 -c %d ",
		si.Project,
		si.Partition,
		si.Cores,
		fmtDuration(si.Time),
		si.JobName,
		si.Threads)
}

// CommandPrefix returns the string to prepend to a shell command: the
// salloc/srun wrapper when running on a cluster, nothing for local runs.
func (si SlurmInfo) CommandPrefix(mode RunMode) string {
	if mode == RunModeHPC {
		return si.AsSallocString()
	}
	return ""
}

// ParseDuration parses a duration string such as "12h" or "2h30m".
func ParseDuration(durStr string) (time.Duration, error) {
	return time.ParseDuration(durStr)
}

func fmtDuration(t time.Duration) string {
	t = t.Round(time.Second)
	d := t / (24 * time.Hour)
	t -= d * (24 * time.Hour)
	h := t / time.Hour
	t -= h * time.Hour
	m := t / time.Minute
	t -= m * time.Minute
	s := t / time.Second
	return fmt.Sprintf("%d-%02d:%02d:%02d", d, h, m, s)
}
