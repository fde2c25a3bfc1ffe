package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPlotsMetricAndWritesFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-sim", "swarm", "-steps", "30", "-metric", "mean_size",
		"-set", "w=40", "-set", "h=30", "-set", "count=20",
		"-png", out, "-log-level", "warn",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "swarm mean_size over 30 ticks") {
		t.Fatalf("missing caption in %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "respawns") {
		t.Fatalf("missing final stats in %q", stdout.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("frame bounds = %v", b)
	}
}

func TestRunRejectsUnknownMetric(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-sim", "forester", "-steps", "2", "-metric", "nope", "-set", "depth=2"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), `no stat "nope"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestDefaultMetricSkipsTick(t *testing.T) {
	if got := defaultMetric(map[string]float64{"tick": 1, "zeta": 2, "alpha": 3}); got != "alpha" {
		t.Fatalf("defaultMetric = %q", got)
	}
	if got := defaultMetric(map[string]float64{"tick": 1}); got != "tick" {
		t.Fatalf("defaultMetric = %q", got)
	}
}
