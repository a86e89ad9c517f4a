package observability

import (
	"testing"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitCLILogger(t *testing.T) {
	InitCLILogger("bizwhiz-test", true)
	require.NotNil(t, CLILogger)

	CLILogger.Debug("search progress", zap.Int("index", 0), zap.String("name", "Joe's Diner"))
}

func TestInitServerLogger(t *testing.T) {
	t.Cleanup(func() { ServerLogger = nil })

	InitServerLogger("bizwhiz-test", "debug")
	require.NotNil(t, ServerLogger)
	require.Same(t, ServerLogger, Logger())

	ServerLogger.Info("status updated", zap.Int("row", 1), zap.String("status", "Contacted"))
}

func TestLoggerFallsBackToCLI(t *testing.T) {
	ServerLogger = nil
	CLILogger = nil

	logger := Logger()
	require.NotNil(t, logger)
	require.Same(t, CLILogger, logger)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLogLevel(" Debug "))
	require.Equal(t, "WARN", parseLogLevel("warning"))
	require.Equal(t, "TRACE", parseLogLevel("trace"))
	require.Equal(t, "INFO", parseLogLevel("loud"))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("BIZWHIZ_ENV", "staging")
	require.Equal(t, "staging", environment())

	t.Setenv("BIZWHIZ_ENV", "")
	require.Equal(t, "local", environment())
}

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("[::]:9091")
	require.NoError(t, err)
	require.Equal(t, 9091, port)

	_, err = resolvePort("no-port")
	require.Error(t, err)
}

func TestCrucibleVersion(t *testing.T) {
	version := crucible.GetVersion()
	require.NotEmpty(t, version.Gofulmen)
	require.NotEmpty(t, version.Crucible)
}
