package detection_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/pkg/process"
)

var image = []byte{0xff, 0xd8, 0xff, 0xe0, 'l', 'e', 'a', 'f'}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func helperRunner(mode, stdout string, calls *atomic.Int32) *process.Runner {
	return process.New(
		process.WithCommandFunc(func(ctx context.Context, name string, args ...string) *exec.Cmd {
			if calls != nil {
				calls.Add(1)
			}
			cs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
			cmd := exec.CommandContext(ctx, os.Args[0], cs...)
			cmd.Env = append(
				os.Environ(),
				"GO_WANT_HELPER_PROCESS=1",
				fmt.Sprintf("CLASSIFIER_HELPER_MODE=%s", mode),
				fmt.Sprintf("CLASSIFIER_HELPER_STDOUT=%s", stdout),
			)
			return cmd
		}),
		process.WithWaitDelay(100*time.Millisecond),
	)
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch os.Getenv("CLASSIFIER_HELPER_MODE") {
	case "print":
		fmt.Print(os.Getenv("CLASSIFIER_HELPER_STDOUT"))
		os.Exit(0)
	case "inspect":
		for _, arg := range args {
			if strings.HasSuffix(arg, ".jpg") {
				if _, err := os.Stat(arg); err != nil {
					fmt.Fprintf(os.Stderr, "image missing: %v", err)
					os.Exit(2)
				}
			}
		}
		time.Sleep(50 * time.Millisecond)
		fmt.Printf(`{"predicted_class":%q,"confidence":0.9}`, strings.Join(args, "|"))
		os.Exit(0)
	case "fail":
		fmt.Fprint(os.Stderr, "Traceback: model weights not found")
		os.Exit(1)
	case "hang":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func configured(dir string) detection.Config {
	return detection.Config{
		Bindings: map[detection.PlantType]detection.Binding{
			detection.Tomato: {
				Command:      "python3",
				Args:         []string{"predict_tomato.py"},
				ModelPath:    "/models/tomato.h5",
				RequireModel: true,
			},
			detection.Corn: {
				Command: "python3",
				Args:    []string{"predict_corn.py"},
			},
		},
		Timeout:    10 * time.Second,
		ScratchDir: dir,
	}
}

func assertFallback(t *testing.T, out detection.Outcome, plant detection.PlantType, tag string) {
	t.Helper()
	if !out.IsFallback {
		t.Errorf("IsFallback = false, want true")
	}
	if out.ModelUsed != tag {
		t.Errorf("ModelUsed = %s, want %s", out.ModelUsed, tag)
	}
	if !slices.Contains(plant.Labels(), out.DiseaseLabel) {
		t.Errorf("DiseaseLabel = %s, not in %s label set", out.DiseaseLabel, plant)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		t.Errorf("Confidence = %v, outside [0,1]", out.Confidence)
	}
	if out.RawLabel != nil || out.Top3 != nil {
		t.Errorf("fallback carries rawLabel or top3")
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir holds %d leftover files", len(entries))
	}
}

func TestClassifyProcessSuccess(t *testing.T) {
	dir := t.TempDir()
	stdout := `{"predicted_class":"Tomato___Late_blight","confidence":0.93,` +
		`"top3":[{"label":"Tomato___Late_blight","prob":0.93},{"label":"Tomato___Early_blight","prob":0.05},` +
		`{"label":"Tomato___healthy","prob":0.01},{"label":"Tomato___Leaf_Mold","prob":0.01}],"top5":[]}`

	d := detection.NewDispatcher(configured(dir), helperRunner("print", stdout, nil), discardLogger())

	out, err := d.Classify(context.Background(), image, detection.Tomato)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if out.IsFallback {
		t.Fatal("IsFallback = true, want genuine outcome")
	}
	if out.ModelUsed != detection.TagTomatoModel {
		t.Errorf("ModelUsed = %s, want %s", out.ModelUsed, detection.TagTomatoModel)
	}
	if out.DiseaseLabel != "Tomato___Late_blight" {
		t.Errorf("DiseaseLabel = %s", out.DiseaseLabel)
	}
	if out.RawLabel == nil || *out.RawLabel != "Tomato___Late_blight" {
		t.Errorf("RawLabel = %v", out.RawLabel)
	}
	if out.Confidence != 0.93 {
		t.Errorf("Confidence = %v, want 0.93", out.Confidence)
	}
	if len(out.Top3) != 3 {
		t.Fatalf("Top3 length = %d, want 3", len(out.Top3))
	}
	if out.Top3[1].Label != "Tomato___Early_blight" || out.Top3[1].Score != 0.05 {
		t.Errorf("Top3[1] = %+v", out.Top3[1])
	}
	if out.ProcessedAt.IsZero() {
		t.Error("ProcessedAt is zero")
	}

	assertEmptyDir(t, dir)
}

func TestClassifyCornModelTag(t *testing.T) {
	stdout := `{"predicted_class":"corn_common_rust","confidence":0.88,"top3":[{"label":"corn_common_rust","score":0.88}]}`
	d := detection.NewDispatcher(configured(t.TempDir()), helperRunner("print", stdout, nil), discardLogger())

	out, err := d.Classify(context.Background(), image, detection.Corn)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if out.IsFallback {
		t.Fatal("IsFallback = true, want genuine outcome")
	}
	if out.ModelUsed != detection.TagCornModel {
		t.Errorf("ModelUsed = %s, want %s", out.ModelUsed, detection.TagCornModel)
	}
	if len(out.Top3) != 1 || out.Top3[0].Score != 0.88 {
		t.Errorf("Top3 = %+v", out.Top3)
	}
}

func TestClassifyArguments(t *testing.T) {
	dir := t.TempDir()
	d := detection.NewDispatcher(configured(dir), helperRunner("inspect", "", nil), discardLogger())

	tests := []struct {
		plant     detection.PlantType
		wantParts int
		script    string
	}{
		{detection.Tomato, 3, "predict_tomato.py"},
		{detection.Corn, 2, "predict_corn.py"},
	}

	for _, tt := range tests {
		t.Run(string(tt.plant), func(t *testing.T) {
			out, err := d.Classify(context.Background(), image, tt.plant)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if out.IsFallback {
				t.Fatalf("IsFallback = true, helper rejected the invocation")
			}

			parts := strings.Split(out.DiseaseLabel, "|")
			if len(parts) != tt.wantParts {
				t.Fatalf("args = %v, want %d entries", parts, tt.wantParts)
			}
			if parts[0] != tt.script {
				t.Errorf("script = %s, want %s", parts[0], tt.script)
			}
			if filepath.Dir(parts[1]) != dir {
				t.Errorf("image path %s not under scratch dir %s", parts[1], dir)
			}
			if !strings.HasPrefix(filepath.Base(parts[1]), string(tt.plant)+"-") {
				t.Errorf("image name %s lacks plant prefix", filepath.Base(parts[1]))
			}
			if tt.plant == detection.Tomato && parts[2] != "/models/tomato.h5" {
				t.Errorf("model path = %s, want /models/tomato.h5", parts[2])
			}
		})
	}

	assertEmptyDir(t, dir)
}

func TestClassifyRejectsMalformedOutput(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
	}{
		{"empty output", ""},
		{"not json", "Segmentation fault"},
		{"embedded error", `{"error":"prediction_failed","message":"bad tensor"}`},
		{"error with class", `{"error":"tensorflow_not_available","predicted_class":"healthy","confidence":0.9}`},
		{"missing class", `{"confidence":0.9}`},
		{"empty class", `{"predicted_class":"  ","confidence":0.9}`},
		{"class not string", `{"predicted_class":3,"confidence":0.9}`},
		{"confidence above range", `{"predicted_class":"healthy","confidence":1.7}`},
		{"confidence below range", `{"predicted_class":"healthy","confidence":-0.1}`},
		{"numeric string above range", `{"predicted_class":"healthy","confidence":"85"}`},
		{"top3 not list", `{"predicted_class":"healthy","confidence":0.9,"top3":"healthy"}`},
		{"top3 missing label", `{"predicted_class":"healthy","confidence":0.9,"top3":[{"prob":0.9}]}`},
		{"top3 missing score", `{"predicted_class":"healthy","confidence":0.9,"top3":[{"label":"healthy"}]}`},
		{"top3 score out of range", `{"predicted_class":"healthy","confidence":0.9,"top3":[{"label":"healthy","prob":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			d := detection.NewDispatcher(configured(dir), helperRunner("print", tt.stdout, nil), discardLogger())

			out, err := d.Classify(context.Background(), image, detection.Tomato)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			assertFallback(t, out, detection.Tomato, "tomato_fallback")
			if out.Confidence != 0.6 {
				t.Errorf("Confidence = %v, want 0.6", out.Confidence)
			}
			assertEmptyDir(t, dir)
		})
	}
}

func TestClassifyConfidenceCoercion(t *testing.T) {
	tests := []struct {
		name       string
		confidence string
		want       float64
	}{
		{"number", `,"confidence":0.42`, 0.42},
		{"numeric string", `,"confidence":"0.85"`, 0.85},
		{"missing", ``, detection.DefaultConfidence},
		{"null", `,"confidence":null`, detection.DefaultConfidence},
		{"non-numeric string", `,"confidence":"high"`, detection.DefaultConfidence},
		{"boolean", `,"confidence":true`, detection.DefaultConfidence},
		{"zero", `,"confidence":0`, 0},
		{"one", `,"confidence":1`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := `{"predicted_class":"leaf mold"` + tt.confidence + `}`
			d := detection.NewDispatcher(configured(t.TempDir()), helperRunner("print", stdout, nil), discardLogger())

			out, err := d.Classify(context.Background(), image, detection.Tomato)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if out.IsFallback {
				t.Fatal("IsFallback = true, want genuine outcome")
			}
			if out.Confidence != tt.want {
				t.Errorf("Confidence = %v, want %v", out.Confidence, tt.want)
			}
		})
	}
}

func TestClassifyProcessFailure(t *testing.T) {
	dir := t.TempDir()
	d := detection.NewDispatcher(configured(dir), helperRunner("fail", "", nil), discardLogger())

	for _, plant := range detection.PlantTypes {
		out, err := d.Classify(context.Background(), image, plant)
		if err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
		assertFallback(t, out, plant, plant.FallbackTag())
	}

	assertEmptyDir(t, dir)
}

func TestClassifyTimeout(t *testing.T) {
	dir := t.TempDir()
	cfg := configured(dir)
	cfg.Timeout = 200 * time.Millisecond

	d := detection.NewDispatcher(cfg, helperRunner("hang", "", nil), discardLogger())

	start := time.Now()
	out, err := d.Classify(context.Background(), image, detection.Corn)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Classify took %s, classifier was not killed", elapsed)
	}

	assertFallback(t, out, detection.Corn, "corn_fallback")
	assertEmptyDir(t, dir)
}

func TestClassifyCanceledRequest(t *testing.T) {
	dir := t.TempDir()
	d := detection.NewDispatcher(configured(dir), helperRunner("hang", "", nil), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	out, err := d.Classify(ctx, image, detection.Tomato)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	assertFallback(t, out, detection.Tomato, "tomato_fallback")
	assertEmptyDir(t, dir)
}

func TestClassifyMissingBinary(t *testing.T) {
	dir := t.TempDir()
	cfg := configured(dir)
	cfg.Bindings[detection.Corn] = detection.Binding{Command: "/nonexistent/canopy/classifier"}

	d := detection.NewDispatcher(cfg, process.New(), discardLogger())

	out, err := d.Classify(context.Background(), image, detection.Corn)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	assertFallback(t, out, detection.Corn, "corn_fallback")
	assertEmptyDir(t, dir)
}

func TestClassifyTomatoWithoutModelPath(t *testing.T) {
	var calls atomic.Int32

	cfg := configured(t.TempDir())
	tomato := cfg.Bindings[detection.Tomato]
	tomato.ModelPath = ""
	cfg.Bindings[detection.Tomato] = tomato

	d := detection.NewDispatcher(cfg, helperRunner("inspect", "", &calls), discardLogger())

	for range 50 {
		out, err := d.Classify(context.Background(), image, detection.Tomato)
		if err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
		assertFallback(t, out, detection.Tomato, detection.TagUnconfigured)
		if out.Confidence != 0.6 {
			t.Errorf("Confidence = %v, want 0.6", out.Confidence)
		}
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("classifier spawned %d times, want 0", n)
	}

	name, ok := d.Describe(detection.Tomato)
	if ok || name != detection.TagUnconfigured {
		t.Errorf("Describe(tomato) = (%s, %v), want (none, false)", name, ok)
	}
}

func TestClassifyCornFallbackBand(t *testing.T) {
	d := detection.NewDispatcher(
		detection.Config{},
		process.New(),
		discardLogger(),
		detection.WithRandSource(rand.NewPCG(7, 11)),
	)

	seen := make(map[string]bool)
	for range 400 {
		out, err := d.Classify(context.Background(), image, detection.Corn)
		if err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
		assertFallback(t, out, detection.Corn, detection.TagUnconfigured)
		if out.Confidence < 0.75 || out.Confidence > 0.95 {
			t.Errorf("Confidence = %v, outside [0.75,0.95]", out.Confidence)
		}
		seen[out.DiseaseLabel] = true
	}

	if len(seen) != len(detection.Corn.Labels()) {
		t.Errorf("drew %d distinct labels, want all %d", len(seen), len(detection.Corn.Labels()))
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	d := detection.NewDispatcher(detection.Config{}, process.New(), discardLogger())

	if _, err := d.Classify(context.Background(), image, detection.PlantType("potato")); !errors.Is(err, detection.ErrUnsupportedPlant) {
		t.Errorf("unsupported plant: got %v, want ErrUnsupportedPlant", err)
	}
	if _, err := d.Classify(context.Background(), nil, detection.Tomato); !errors.Is(err, detection.ErrEmptyImage) {
		t.Errorf("empty image: got %v, want ErrEmptyImage", err)
	}
}

type stubBackend struct {
	outcome detection.Outcome
	err     error
}

func (s stubBackend) Name() string { return "stub" }

func (s stubBackend) Classify(context.Context, []byte, detection.PlantType) (detection.Outcome, error) {
	return s.outcome, s.err
}

func TestClassifyInjectedBackend(t *testing.T) {
	tests := []struct {
		name         string
		backend      stubBackend
		wantFallback bool
	}{
		{
			name:    "genuine outcome passes through",
			backend: stubBackend{outcome: detection.Outcome{DiseaseLabel: "tmv", Confidence: 0.8, ModelUsed: "stub"}},
		},
		{
			name:         "backend error",
			backend:      stubBackend{err: detection.ErrRuntime},
			wantFallback: true,
		},
		{
			name:         "confidence out of range",
			backend:      stubBackend{outcome: detection.Outcome{DiseaseLabel: "tmv", Confidence: 1.5}},
			wantFallback: true,
		},
		{
			name:         "empty label",
			backend:      stubBackend{outcome: detection.Outcome{Confidence: 0.5}},
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := detection.NewDispatcher(
				detection.Config{},
				process.New(),
				discardLogger(),
				detection.WithBackend(detection.Tomato, tt.backend),
			)

			out, err := d.Classify(context.Background(), image, detection.Tomato)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if tt.wantFallback {
				assertFallback(t, out, detection.Tomato, "tomato_fallback")
				return
			}
			if out.IsFallback || out.DiseaseLabel != "tmv" {
				t.Errorf("outcome = %+v, want stub outcome", out)
			}
		})
	}
}

func TestClassifyConcurrentScratchFiles(t *testing.T) {
	dir := t.TempDir()
	d := detection.NewDispatcher(configured(dir), helperRunner("inspect", "", nil), discardLogger())

	const n = 16

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		paths = make(map[string]struct{}, n)
	)

	for range n {
		wg.Go(func() {
			out, err := d.Classify(context.Background(), image, detection.Tomato)
			if err != nil {
				t.Errorf("Classify returned error: %v", err)
				return
			}
			if out.IsFallback {
				t.Errorf("IsFallback = true, a scratch file was missing during the call")
				return
			}
			parts := strings.Split(out.DiseaseLabel, "|")
			mu.Lock()
			paths[parts[1]] = struct{}{}
			mu.Unlock()
		})
	}
	wg.Wait()

	if len(paths) != n {
		t.Errorf("distinct scratch paths = %d, want %d", len(paths), n)
	}
	for path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("scratch file %s outlived its request", path)
		}
	}
	assertEmptyDir(t, dir)
}

func TestParsePlantType(t *testing.T) {
	tests := []struct {
		input   string
		want    detection.PlantType
		wantErr bool
	}{
		{"", detection.Tomato, false},
		{"tomato", detection.Tomato, false},
		{" Corn ", detection.Corn, false},
		{"potato", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := detection.ParsePlantType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, detection.ErrUnsupportedPlant) {
					t.Errorf("error = %v, want ErrUnsupportedPlant", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePlantType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: tomato", detection.ErrNotConfigured), "configuration"},
		{fmt.Errorf("%w: %w", detection.ErrLaunch, process.ErrStart), "launch"},
		{fmt.Errorf("%w: %w", detection.ErrRuntime, process.ErrTimeout), "runtime"},
		{detection.ErrMalformedOutput, "malformed_output"},
		{errors.New("other"), "unknown"},
	}

	for _, tt := range tests {
		if got := detection.Category(tt.err); got != tt.want {
			t.Errorf("Category(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestClassifyFailureLoggedOnce(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := detection.NewDispatcher(configured(dir), helperRunner("fail", "", nil), logger)

	out, err := d.Classify(context.Background(), image, detection.Corn)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	assertFallback(t, out, detection.Corn, detection.Corn.FallbackTag())

	logs := buf.String()
	if n := strings.Count(logs, "level=WARN"); n != 1 {
		t.Errorf("warn lines = %d, want 1:\n%s", n, logs)
	}
	for _, want := range []string{"classifier failed", "exit_code=1", "model weights not found", "using fallback outcome"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}

func TestProcessBackendDefaultTimeout(t *testing.T) {
	binding := detection.Binding{Command: "python3", Args: []string{"predict_corn.py"}}

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"zero", 0, detection.DefaultTimeout},
		{"negative", -time.Second, detection.DefaultTimeout},
		{"explicit", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := detection.NewProcessBackend(process.New(), detection.Corn, binding, tt.timeout, t.TempDir(), discardLogger())
			if err != nil {
				t.Fatalf("NewProcessBackend: %v", err)
			}
			if got := b.Timeout(); got != tt.want {
				t.Errorf("Timeout = %s, want %s", got, tt.want)
			}
		})
	}
}
