package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const savedResults = `[
  {
    "Name": "Blue Door Cafe",
    "Website": "https://bluedoor.example",
    "Phone": "(555) 010-0001",
    "Emails": "hello@bluedoor.example",
    "Street Address": "1 Main St, Springfield",
    "Status": "Not Contacted"
  }
]
`

func buildBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("standalone binary copy/exec test is unix-focused")
	}
	goModPathBytes, err := exec.Command("go", "env", "GOMOD").Output()
	require.NoError(t, err, "go env GOMOD")
	goModPath := strings.TrimSpace(string(goModPathBytes))
	require.NotEmpty(t, goModPath, "go env GOMOD returned empty")
	repoRoot := filepath.Dir(goModPath)

	binaryPath := filepath.Join(t.TempDir(), "bizwhiz")
	build := exec.Command("go", "build", "-o", binaryPath, "./cmd/bizwhiz")
	build.Dir = repoRoot
	build.Env = os.Environ()
	out, err := build.CombinedOutput()
	require.NoError(t, err, "go build:\n%s", string(out))
	return binaryPath
}

// isolatedEnv keeps the run away from the developer's config and .env.
func isolatedEnv(t *testing.T, dir string) []string {
	t.Helper()
	env := []string{
		"HOME=" + dir,
		"XDG_CONFIG_HOME=" + filepath.Join(dir, ".config"),
		"PATH=" + os.Getenv("PATH"),
	}
	return env
}

func TestStandaloneBinaryVersionAndHelpWorkOutsideRepo(t *testing.T) {
	binary := buildBinary(t)
	outside := t.TempDir()

	version := exec.Command(binary, "version")
	version.Dir = outside
	version.Env = isolatedEnv(t, outside)
	out, err := version.CombinedOutput()
	require.NoError(t, err, "version failed:\n%s", string(out))
	require.Contains(t, string(out), "bizwhiz")

	help := exec.Command(binary, "--help")
	help.Dir = outside
	help.Env = isolatedEnv(t, outside)
	out, err = help.CombinedOutput()
	require.NoError(t, err, "--help failed:\n%s", string(out))
	for _, sub := range []string{"search", "results", "status", "serve"} {
		require.Contains(t, string(out), sub)
	}
}

func TestStatusEditPersistsToResultsFile(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "businesses_results.json")
	require.NoError(t, os.WriteFile(resultsPath, []byte(savedResults), 0o644))

	status := exec.Command(binary, "status", "1", "signed", "up")
	status.Dir = dir
	status.Env = isolatedEnv(t, dir)
	out, err := status.CombinedOutput()
	require.NoError(t, err, "status failed:\n%s", string(out))
	require.Contains(t, string(out), "Signed-up (#90ee90)")

	data, err := os.ReadFile(resultsPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"Status": "Signed-up"`)

	results := exec.Command(binary, "results", "-o", "csv")
	results.Dir = dir
	results.Env = isolatedEnv(t, dir)
	out, err = results.Output()
	require.NoError(t, err)
	require.Contains(t, string(out), "Blue Door Cafe")
	require.Contains(t, string(out), "Signed-up")
}

func TestUnknownStatusExitsNonZero(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "businesses_results.json")
	require.NoError(t, os.WriteFile(resultsPath, []byte(savedResults), 0o644))

	status := exec.Command(binary, "status", "1", "maybe")
	status.Dir = dir
	status.Env = isolatedEnv(t, dir)
	_, err := status.CombinedOutput()
	require.Error(t, err)

	data, err := os.ReadFile(resultsPath)
	require.NoError(t, err)
	require.Equal(t, savedResults, string(data))
}
