package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/gifboard/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself.
func TestExitfExitsWithCode1(t *testing.T) {
	if os.Getenv("GIFBOARD_TEST_EXITF_SUBPROCESS") == "1" {
		config.Exitf("serve: %s", "listen tcp :8080: bind: address already in use")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCode1$")
	cmd.Env = append(os.Environ(), "GIFBOARD_TEST_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	want := "serve: listen tcp :8080: bind: address already in use"
	if !strings.Contains(string(out), want) {
		t.Fatalf("stderr = %q, want it to contain %q", string(out), want)
	}
}
