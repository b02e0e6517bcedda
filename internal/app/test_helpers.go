package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance for system testing. Logging is
// forced to debug and captured in the returned buffer.
func SetupAppTest(t *testing.T, cfg Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	testApp, err := NewApp(logBuffer, validated, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("BDDGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
