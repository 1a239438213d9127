package hpc

import (
	"testing"
	"time"
)

func TestFmtDuration(t *testing.T) {
	for duration, expectedDurStr := range map[time.Duration]string{
		3600 * time.Second:                                           "0-01:00:00",
		3601 * time.Second:                                           "0-01:00:01",
		1*24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second: "1-02:03:04",
	} {
		actualDurStr := fmtDuration(duration)
		if actualDurStr != expectedDurStr {
			t.Errorf("Wrong duration string:\nEXPECTED:\n%s\nACTUAL:\n%s\n", expectedDurStr, actualDurStr)
		}
	}
}

func TestCommandPrefix(t *testing.T) {
	si := SlurmInfo{
		Project:   "snic2021-1-123",
		Partition: PartitionCore,
		Cores:     4,
		Time:      2 * time.Hour,
		JobName:   "align_S1",
		Threads:   4,
	}

	if prefix := si.CommandPrefix(RunModeLocal); prefix != "" {
		t.Errorf("Wrong local prefix:\nEXPECTED:\n(empty)\nACTUAL:\n%s\n", prefix)
	}

	expected := "salloc -A snic2021-1-123 -p core -n 4 -t 0-02:00:00 -J align_S1 srun -n 1 -c 4 "
	if actual := si.CommandPrefix(RunModeHPC); actual != expected {
		t.Errorf("Wrong HPC prefix:\nEXPECTED:\n%s\nACTUAL:\n%s\n", expected, actual)
	}
}

func TestParseRunMode(t *testing.T) {
	for modeStr, expected := range map[string]RunMode{
		"":      RunModeLocal,
		"local": RunModeLocal,
		"hpc":   RunModeHPC,
		"slurm": RunModeHPC,
	} {
		actual, err := ParseRunMode(modeStr)
		if err != nil {
			t.Fatal(err)
		}
		if actual != expected {
			t.Errorf("Wrong run mode for %q:\nEXPECTED:\n%d\nACTUAL:\n%d\n", modeStr, expected, actual)
		}
	}
	if _, err := ParseRunMode("cloud"); err == nil {
		t.Error("Expected error for unknown runmode")
	}
}
