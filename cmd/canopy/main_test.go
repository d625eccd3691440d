package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/internal/risk"
)

// TestHelperProcess stands in for a classifier program when the CLI is
// configured to run the test binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("CANOPY_CLI_HELPER") != "1" {
		return
	}
	fmt.Print(`{"predicted_class":"Common Rust","confidence":0.91}`)
	os.Exit(0)
}

func setupCLI(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"CANOPY_ENV",
		"CANOPY_TOMATO_COMMAND",
		"CANOPY_TOMATO_MODEL_PATH",
		"CANOPY_CORN_COMMAND",
		"CANOPY_CORN_ARGS",
		"CANOPY_RISK_COMMAND",
		"CANOPY_INFERENCE_SCRATCH_DIR",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("\xff\xd8\xff\xe0fake-jpeg"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestRootShowsHelp(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "classify")
	requireContains(t, out, "diseases")
	requireContains(t, out, "risk")
}

func TestDiseasesList(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "diseases")
	if err != nil {
		t.Fatalf("diseases: %v", err)
	}
	requireContains(t, out, "late_blight")
	requireContains(t, out, "Phytophthora infestans")
	requireContains(t, out, "corn_common_rust")
}

func TestDiseasesListJSON(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "diseases", "--json")
	if err != nil {
		t.Fatalf("diseases --json: %v", err)
	}

	var got diseases.ListResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != len(got.Diseases) || got.Total != len(diseases.Default().List()) {
		t.Errorf("total = %d, diseases = %d", got.Total, len(got.Diseases))
	}
}

func TestDiseasesShow(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "diseases", "late_blight")
	if err != nil {
		t.Fatalf("diseases late_blight: %v", err)
	}
	requireContains(t, out, "Late Blight")
	requireContains(t, out, "SYMPTOMS")
	requireContains(t, out, "PREVENTION")

	_, _, err = runCLI(t, "diseases", "root_rot")
	if err == nil {
		t.Fatal("expected error for unknown disease")
	}
	requireContains(t, err.Error(), "disease not found")
}

func TestRisk(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "risk", "--temperature", "20", "--humidity", "72", "--json")
	if err != nil {
		t.Fatalf("risk: %v", err)
	}

	var got risk.Assessment
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RiskLevel != risk.High || got.Source != risk.SourceHeuristic {
		t.Errorf("got %s/%s, want High/heuristic", got.RiskLevel, got.Source)
	}

	out, _, err = runCLI(t, "risk", "-t", "5", "-u", "40")
	if err != nil {
		t.Fatalf("risk table: %v", err)
	}
	requireContains(t, out, "Low")
	requireContains(t, out, "Conditions are not favorable for disease development.")
}

func TestRiskValidation(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"temperature out of range", []string{"risk", "--temperature", "70", "--humidity", "50"}},
		{"humidity out of range", []string{"risk", "--temperature", "20", "--humidity", "120"}},
		{"missing humidity", []string{"risk", "--temperature", "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClassifyUnconfigured(t *testing.T) {
	dir := setupCLI(t)
	image := writeImage(t, dir, "leaf.jpg")

	out, _, err := runCLI(t, "classify", image, "--json")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	var got []classifyResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("results = %d, want 1", len(got))
	}

	r := got[0]
	if !r.Detection.IsFallback {
		t.Error("IsFallback = false, want true")
	}
	if r.Detection.ModelUsed != detection.TagUnconfigured {
		t.Errorf("ModelUsed = %q, want %q", r.Detection.ModelUsed, detection.TagUnconfigured)
	}
	if !diseases.Default().Contains(r.DiseaseID) {
		t.Errorf("DiseaseID %q not registered", r.DiseaseID)
	}
}

func TestClassifyWithClassifier(t *testing.T) {
	dir := setupCLI(t)
	image := writeImage(t, dir, "corn.jpg")

	t.Setenv("CANOPY_CLI_HELPER", "1")
	t.Setenv("CANOPY_CORN_COMMAND", os.Args[0])
	t.Setenv("CANOPY_CORN_ARGS", "-test.run=TestHelperProcess --")

	out, _, err := runCLI(t, "classify", "--plant", "corn", image)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "corn.jpg")
	requireContains(t, out, "Common Rust")
	requireContains(t, out, "91.0%")
	requireContains(t, out, detection.TagCornModel)
	requireContains(t, out, "IMMEDIATE")
}

func TestClassifyErrors(t *testing.T) {
	dir := setupCLI(t)
	image := writeImage(t, dir, "leaf.jpg")
	empty := filepath.Join(dir, "empty.jpg")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unsupported plant", []string{"classify", "--plant", "potato", image}, "potato"},
		{"missing file", []string{"classify", filepath.Join(dir, "missing.jpg")}, "read image"},
		{"empty image", []string{"classify", empty}, "empty.jpg"},
		{"no args", []string{"classify"}, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
}

func TestRenderLevel(t *testing.T) {
	if got := renderLevel(risk.High, false); got != "High" {
		t.Errorf("renderLevel(High, false) = %q, want High", got)
	}
	if got := renderLevel(risk.Medium, true); got == "Medium" || !strings.Contains(got, "Medium") {
		t.Errorf("renderLevel(Medium, true) = %q, want colorized Medium", got)
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Error("shouldColorize(buffer) = true, want false")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Disease", "Confidence"},
		[][]string{{"Late Blight", "91.0%"}},
		[]columnAlignment{alignLeft, alignRight},
	)

	requireContains(t, out, "DISEASE")
	requireContains(t, out, "CONFIDENCE")
	requireContains(t, out, "Late Blight")
	requireContains(t, out, "91.0%")

	if got := renderTable(nil, nil, nil); got != "" {
		t.Errorf("renderTable without headers = %q, want empty", got)
	}
}
