package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/bizwhiz/bizwhiz/internal/core"
	"github.com/bizwhiz/bizwhiz/internal/core/places"
	"github.com/bizwhiz/bizwhiz/internal/output"
)

func TestPromptAPIKey(t *testing.T) {
	var out strings.Builder
	key, err := promptAPIKey(strings.NewReader("  abc123  \n"), &out)
	require.NoError(t, err)
	require.Equal(t, "abc123", key)
	require.Equal(t, apiKeyPrompt, out.String())
}

func TestPromptAPIKeyWithoutNewline(t *testing.T) {
	key, err := promptAPIKey(strings.NewReader("abc123"), &strings.Builder{})
	require.NoError(t, err)
	require.Equal(t, "abc123", key)
}

func TestPromptAPIKeyEmptyOrClosed(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n"} {
		_, err := promptAPIKey(strings.NewReader(input), &strings.Builder{})
		require.ErrorIs(t, err, errNoAPIKey, "input %q", input)
		require.Equal(t, int(foundry.ExitConfigInvalid), int(ExitCodeFor(err)))
	}
}

func TestParseStatusArgs(t *testing.T) {
	row, status, err := parseStatusArgs([]string{"3", "Declined", "Services"})
	require.NoError(t, err)
	require.Equal(t, 3, row)
	require.Equal(t, core.StatusDeclinedServices, status)

	row, status, err = parseStatusArgs([]string{"1", "contacted"})
	require.NoError(t, err)
	require.Equal(t, 1, row)
	require.Equal(t, core.StatusContacted, status)
}

func TestParseStatusArgsRejectsBadInput(t *testing.T) {
	_, _, err := parseStatusArgs([]string{"0", "Contacted"})
	require.Error(t, err)

	_, _, err = parseStatusArgs([]string{"x", "Contacted"})
	require.Error(t, err)

	_, _, err = parseStatusArgs([]string{"2", "Maybe"})
	require.ErrorIs(t, err, core.ErrUnknownStatus)

	_, _, err = parseStatusArgs([]string{"2"})
	require.Error(t, err)
}

func TestExitCodeFor(t *testing.T) {
	upstream := &places.UpstreamError{Operation: "geocode", Status: "REQUEST_DENIED"}

	require.Equal(t, int(foundry.ExitExternalServiceUnavailable), int(ExitCodeFor(fmt.Errorf("search: %w", upstream))))
	require.Equal(t, int(foundry.ExitConfigInvalid), int(ExitCodeFor(asConfigError(errors.New("bad driver")))))
	require.Equal(t, int(foundry.ExitFailure), int(ExitCodeFor(errors.New("boom"))))
}

func TestOutputExtension(t *testing.T) {
	require.Equal(t, "json", outputExtension(output.FormatJSON))
	require.Equal(t, "md", outputExtension(output.FormatMarkdown))
	require.Equal(t, "csv", outputExtension(output.FormatCSV))
	require.Equal(t, "yaml", outputExtension(output.FormatYAML))
	require.Equal(t, "txt", outputExtension(output.FormatTable))
}

func TestOpenSinkDefaultsToStdout(t *testing.T) {
	sink, err := openSink(" ")
	require.NoError(t, err)
	require.True(t, sink.isStdout())
	require.NoError(t, sink.close())
}

func TestRenderRecordsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")

	cmd := &cobra.Command{Use: "test"}
	addOutputFlags(cmd)
	require.NoError(t, cmd.Flags().Set("output", "csv"))
	require.NoError(t, cmd.Flags().Set("out", path))
	cmd.SetErr(&strings.Builder{})

	records := []core.BusinessRecord{{
		Name:          "Blue Door Cafe",
		Website:       core.WebsiteNotAvailable,
		Phone:         "(555) 010-0001",
		StreetAddress: "1 Main St",
		Status:        string(core.StatusContacted),
	}}
	require.NoError(t, renderRecords(cmd, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Blue Door Cafe")
	require.Contains(t, string(data), "Contacted")
	require.NotContains(t, string(data), "\x1b[", "files never get color codes")
}

func TestRenderRecordsRejectsUnknownFormat(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addOutputFlags(cmd)
	require.NoError(t, cmd.Flags().Set("output", "xml"))
	require.Error(t, renderRecords(cmd, nil))
}

func TestRenderRecordsSortedKeepsStoredRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.md")

	cmd := &cobra.Command{Use: "test"}
	addOutputFlags(cmd)
	cmd.Flags().String("sort", "", "")
	cmd.Flags().Bool("desc", false, "")
	require.NoError(t, cmd.Flags().Set("output", "markdown"))
	require.NoError(t, cmd.Flags().Set("out", path))
	require.NoError(t, cmd.Flags().Set("sort", "name"))
	cmd.SetErr(&strings.Builder{})

	records := []core.BusinessRecord{
		{Name: "Zephyr Bakery", Status: string(core.StatusNotContacted)},
		{Name: "Acme Bakery", Status: string(core.StatusContacted)},
	}
	require.NoError(t, renderRecords(cmd, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.True(t, strings.HasPrefix(lines[2], "| 2 | Acme Bakery"), lines[2])
	require.True(t, strings.HasPrefix(lines[3], "| 1 | Zephyr Bakery"), lines[3])

	require.NoError(t, cmd.Flags().Set("sort", "rating"))
	require.Error(t, renderRecords(cmd, records))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"search", "results", "status", "serve", "version", "doctor"} {
		require.True(t, names[want], "missing %s command", want)
	}

	for _, flag := range []string{"zip", "radius", "type", "output", "out", "no-color"} {
		require.NotNil(t, searchCmd.Flags().Lookup(flag), "search is missing --%s", flag)
	}
	for _, flag := range []string{"sort", "desc", "output"} {
		require.NotNil(t, resultsCmd.Flags().Lookup(flag), "results is missing --%s", flag)
	}
}
