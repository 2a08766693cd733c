package main_test

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary once for all tests
	tmpDir, err := os.MkdirTemp("", "concmut-e2e-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmpDir, "concmut")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = filepath.Join(getModuleRoot(), "cmd", "concmut")
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		panic(string(out) + ": " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

func getModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			if _, err := os.Stat(filepath.Join(dir, "analyzer.go")); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("module root not found")
		}
		dir = parent
	}
}

func getE2ETestdata() string {
	return filepath.Join(getModuleRoot(), "cmd", "concmut", "testdata")
}

// runBinary runs the linter in dir and returns its output and exit code.
func runBinary(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf strings.Builder
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	default:
		t.Fatalf("run %s: %v", binaryPath, err)
	}

	return outBuf.String(), errBuf.String(), code
}

func TestE2E_Basic(t *testing.T) {
	out, _, code := runBinary(t, filepath.Join(getE2ETestdata(), "basic"))

	if code != 1 {
		t.Fatalf("expected exit code 1 for code with issues, got %d:\n%s", code, out)
	}
	if !strings.Contains(out, "modifying a collection while iterating over it in forEach") {
		t.Errorf("expected foreachmutation warning, got:\n%s", out)
	}
	if !strings.Contains(out, "modifying a non-concurrent collection in parallel") {
		t.Errorf("expected unsyncmutation warning, got:\n%s", out)
	}
	if !strings.Contains(out, "Main.java:10:") || !strings.Contains(out, "Main.java:13:") {
		t.Errorf("expected file locations in output, got:\n%s", out)
	}
}

func TestE2E_Clean(t *testing.T) {
	out, stderr, code := runBinary(t, getE2ETestdata(), "clean")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d:\n%s%s", code, out, stderr)
	}
	if out != "" {
		t.Errorf("expected no output, got:\n%s", out)
	}
}

func TestE2E_DisableChecker(t *testing.T) {
	out, _, code := runBinary(t, getE2ETestdata(), "--unsyncmutation=false", "basic")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d:\n%s", code, out)
	}
	if strings.Contains(out, "unsyncmutation") {
		t.Errorf("disabled checker still reported:\n%s", out)
	}
}

func TestE2E_StaticParallel(t *testing.T) {
	out, _, code := runBinary(t, getE2ETestdata(), "staticinit/Init.java")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d:\n%s", code, out)
	}
	if !strings.Contains(out, "staticinit/Init.java:6:") || !strings.Contains(out, "(staticparallel)") {
		t.Errorf("expected staticparallel warning, got:\n%s", out)
	}
}

func TestE2E_JSON(t *testing.T) {
	out, _, code := runBinary(t, getE2ETestdata(), "--format", "json", "basic")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}

	var got struct {
		Count    int `json:"count"`
		Findings []struct {
			Checker string `json:"checker"`
		} `json:"findings"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Count != 2 || len(got.Findings) != 2 {
		t.Errorf("expected 2 findings, got %d:\n%s", got.Count, out)
	}
}

func TestE2E_ConfigFile(t *testing.T) {
	dir := filepath.Join(getE2ETestdata(), "config")

	out, stderr, code := runBinary(t, dir)
	if code != 0 {
		t.Fatalf("expected config to disable unsyncmutation, got exit %d:\n%s%s", code, out, stderr)
	}

	// Explicit flags win over the file.
	out, _, code = runBinary(t, dir, "--unsyncmutation=true")
	if code != 1 || !strings.Contains(out, "(unsyncmutation)") {
		t.Errorf("expected unsyncmutation warning with explicit flag, got exit %d:\n%s", code, out)
	}
}

func TestE2E_Baseline(t *testing.T) {
	baseline := filepath.Join(t.TempDir(), "baseline.yml")
	dir := getE2ETestdata()

	out, stderr, code := runBinary(t, dir, "--write-baseline", baseline, "basic")
	if code != 0 {
		t.Fatalf("expected exit code 0 when writing a baseline, got %d:\n%s%s", code, out, stderr)
	}

	out, stderr, code = runBinary(t, dir, "--baseline", baseline, "basic")
	if code != 0 {
		t.Errorf("expected baseline to suppress known findings, got exit %d:\n%s%s", code, out, stderr)
	}
}

func TestE2E_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing path", args: []string{"does/not/exist.java"}, want: "does/not/exist.java"},
		{name: "invalid spec", args: []string{"--thread-creators=submit", "basic"}, want: "thread-creators"},
		{name: "unknown format", args: []string{"--format=xml", "basic"}, want: "unknown output format"},
		{name: "unknown flag", args: []string{"--nope"}, want: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runBinary(t, getE2ETestdata(), tt.args...)
			if code != 2 {
				t.Fatalf("expected exit code 2, got %d:\n%s", code, stderr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q in stderr, got:\n%s", tt.want, stderr)
			}
		})
	}
}
