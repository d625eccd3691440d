package process_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/canopy/pkg/process"
)

func helperCommand(mode string) process.CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("PROCESS_HELPER_MODE=%s", mode))
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("PROCESS_HELPER_MODE") {
	case "success":
		fmt.Print(`{"ok":true}`)
		os.Exit(0)
	case "echo":
		data, _ := io.ReadAll(os.Stdin)
		os.Stdout.Write(data)
		os.Exit(0)
	case "failure":
		fmt.Fprint(os.Stderr, "model file missing")
		os.Exit(3)
	case "hang":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func TestRunSuccess(t *testing.T) {
	r := process.New(process.WithCommandFunc(helperCommand("success")))

	result, err := r.Run(context.Background(), process.Request{Name: "classifier", Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if string(result.Stdout) != `{"ok":true}` {
		t.Errorf("stdout: got %q", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code: got %d, want 0", result.ExitCode)
	}
}

func TestRunStdin(t *testing.T) {
	r := process.New(process.WithCommandFunc(helperCommand("echo")))

	payload := []byte(`{"temperature":20,"humidity":80}`)
	result, err := r.Run(context.Background(), process.Request{Name: "risk", Stdin: payload})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if string(result.Stdout) != string(payload) {
		t.Errorf("stdout: got %q, want %q", result.Stdout, payload)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	r := process.New(process.WithCommandFunc(helperCommand("failure")))

	result, err := r.Run(context.Background(), process.Request{Name: "classifier"})
	if !errors.Is(err, process.ErrExit) {
		t.Fatalf("error: got %v, want ErrExit", err)
	}
	if result == nil {
		t.Fatal("expected partial result with captured stderr")
	}
	if result.ExitCode != 3 {
		t.Errorf("exit code: got %d, want 3", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "model file missing") {
		t.Errorf("stderr: got %q", result.Stderr)
	}
}

func TestRunTimeout(t *testing.T) {
	r := process.New(
		process.WithCommandFunc(helperCommand("hang")),
		process.WithWaitDelay(100*time.Millisecond),
	)

	start := time.Now()
	_, err := r.Run(context.Background(), process.Request{Name: "classifier", Timeout: 200 * time.Millisecond})
	if !errors.Is(err, process.ErrTimeout) {
		t.Fatalf("error: got %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("run took %s, expected the child to be killed", elapsed)
	}
}

func TestRunCanceled(t *testing.T) {
	r := process.New(
		process.WithCommandFunc(helperCommand("hang")),
		process.WithWaitDelay(100*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := r.Run(ctx, process.Request{Name: "classifier", Timeout: 10 * time.Second})
	if !errors.Is(err, process.ErrCanceled) {
		t.Fatalf("error: got %v, want ErrCanceled", err)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := process.New()

	_, err := r.Run(context.Background(), process.Request{Name: "/nonexistent/canopy-classifier"})
	if !errors.Is(err, process.ErrStart) {
		t.Fatalf("error: got %v, want ErrStart", err)
	}
}

func TestRunNoCommand(t *testing.T) {
	r := process.New()

	if _, err := r.Run(context.Background(), process.Request{}); !errors.Is(err, process.ErrNoCommand) {
		t.Fatalf("error: got %v, want ErrNoCommand", err)
	}
}
