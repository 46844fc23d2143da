package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyguide/internal/config"
	"studyguide/internal/printer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Version: 1,
		Storage: config.StorageConfig{Backend: "file", Dir: filepath.Join(dir, "data")},
		Export:  config.ExportConfig{Dir: filepath.Join(dir, "out")},
		UI:      config.UIConfig{InitialSection: "overview", Sidebar: true},
		Logging: config.LoggingConfig{
			ConsoleLogger: config.LoggerConfig{Level: "none"},
			FileLogger:    config.LoggerConfig{Level: "debug", Destination: filepath.Join(dir, "data", "studyguide.log"), Mode: "append"},
		},
	}
}

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	require.NotNil(t, env)
	assert.Same(t, env, EnvFromContext(ctx))
	assert.Nil(t, env.Log)
	assert.False(t, env.ConsoleLogging())
	assert.GreaterOrEqual(t, env.Uptime().Nanoseconds(), int64(0))
}

func TestEnvFromContext_Missing(t *testing.T) {
	assert.Panics(t, func() { EnvFromContext(context.Background()) })
}

func TestPrepare_WiresComponents(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = testConfig(t)

	require.NoError(t, env.Prepare())
	defer env.Close()

	require.NotNil(t, env.Guide)
	assert.NotEmpty(t, env.Guide.Sections)
	assert.IsType(t, printer.FilePrinter{}, env.Printer)

	env.Progress.ToggleFavorite("ch2-coercion")
	path, err := env.Exporter.Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.Cfg.Export.Dir, "adv382j-study-progress.json"), path)
}

func TestPrepare_ProgressSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = cfg
	require.NoError(t, env.Prepare())
	env.Progress.ToggleReviewed("ch4-sjt")
	require.NoError(t, env.Close())

	env = EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = cfg
	require.NoError(t, env.Prepare())
	defer env.Close()
	assert.True(t, env.Progress.Reviewed("ch4-sjt"))
}

func TestClose_Unprepared(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	assert.NoError(t, env.Close())
}

func TestConsoleLogging(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = testConfig(t)
	assert.False(t, env.ConsoleLogging(), "no logger yet")

	require.NoError(t, env.Prepare())
	defer env.Close()
	assert.False(t, env.ConsoleLogging(), "console level none")

	env.Cfg.Logging.ConsoleLogger.Level = "normal"
	assert.True(t, env.ConsoleLogging())
}
