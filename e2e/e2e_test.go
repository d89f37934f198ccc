//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/config"
	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/adapters/store"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/rogpeppe/go-internal/testscript"
)

var etfBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "etf-e2e-*")
	if err != nil {
		panic(err)
	}

	etfBinary = filepath.Join(tmpDir, "etf")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", etfBinary, "./cmd/etf")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build etf binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"results": cmdResults,
		},
	})
}

// setupE2E puts the binary on PATH and clears the environment overrides of
// etf.yaml so the host environment does not leak into the scripts.
func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")
	for _, key := range []string{config.EnvDataDir, config.EnvParallelism, logger.EnvLevel, logger.EnvJSON} {
		env.Setenv(key, "")
	}

	binDir := filepath.Dir(etfBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, domain.DirPerm); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}

// cmdResults checks the number of task results in a result store.
// Usage: results <count> [dir]; dir defaults to .etf/results.
func cmdResults(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 1 || len(args) > 2 {
		ts.Fatalf("usage: results <count> [dir]")
	}
	want, err := strconv.Atoi(args[0])
	ts.Check(err)

	dir := filepath.Join(domain.DataDirName, domain.ResultsDirName)
	if len(args) == 2 {
		dir = args[1]
	}
	ids, err := store.New[*domain.TestTaskResult](ts.MkAbs(dir)).IDs()
	ts.Check(err)

	got := len(ids)
	if neg && got == want {
		ts.Fatalf("results in %s: unexpected count %d", dir, got)
	}
	if !neg && got != want {
		ts.Fatalf("results in %s: got %d, want %d", dir, got, want)
	}
}
