package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath, cfg.DataPath)
	assert.False(t, cfg.Demo)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, GetConfigFileUsed())
}

func TestGetUIConfig_AppliesDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want UIConfig
	}{
		{
			name: "nil ui section",
			cfg:  Config{},
			want: UIConfig{Port: 8780, AutoOpen: true, Watch: true, PageSize: DefaultPageSize},
		},
		{
			name: "partial ui section keeps explicit values",
			cfg:  Config{UI: &UIConfig{Port: 9000}},
			want: UIConfig{Port: 9000, AutoOpen: true, Watch: true, PageSize: DefaultPageSize},
		},
		{
			name: "fully specified",
			cfg:  Config{UI: &UIConfig{Port: 1234, AutoOpen: false, Watch: false, PageSize: 25}},
			want: UIConfig{Port: 1234, AutoOpen: false, Watch: false, PageSize: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.GetUIConfig()
			assert.Equal(t, tt.want.Port, got.Port)
			assert.Equal(t, tt.want.AutoOpen, got.AutoOpen)
			assert.Equal(t, tt.want.Watch, got.Watch)
			assert.Equal(t, tt.want.PageSize, got.PageSize)
		})
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "quarterdeck.yaml")
	cfgContent := `data_path: console.db
demo: true
output: json
ui:
  port: 9191
  page_size: 50
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, cfgPath, GetConfigFileUsed())
	// Relative data_path resolves against the config file's directory.
	assert.Equal(t, filepath.Join(tmpDir, "console.db"), cfg.DataPath)
	assert.True(t, cfg.Demo)
	assert.Equal(t, "json", cfg.OutputFormat)
	require.NotNil(t, cfg.UI)
	assert.Equal(t, 9191, cfg.UI.Port)
	assert.Equal(t, 50, cfg.UI.PageSize)
}

func TestLoadConfig_AbsoluteDataPathUnchanged(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "quarterdeck.yaml")
	absPath := filepath.Join(tmpDir, "elsewhere", "console.db")
	cfgContent := "data_path: " + absPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, absPath, cfg.DataPath)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	ResetConfig()

	// Run from a directory with no quarterdeck.yaml.
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, DefaultDataPath, cfg.DataPath)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "quarterdeck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: from_file\n"), 0600))

	require.NoError(t, os.Setenv("QUARTERDECK_OUTPUT", "from_env"))
	defer func() { _ = os.Unsetenv("QUARTERDECK_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	require.NoError(t, flags.Set("output", "from_flag"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.OutputFormat, "flag value should override config file and env var")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "quarterdeck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: from_file\n"), 0600))

	require.NoError(t, os.Setenv("QUARTERDECK_OUTPUT", "from_env"))
	defer func() { _ = os.Unsetenv("QUARTERDECK_OUTPUT") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.OutputFormat, "env var should override config file")
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("QUARTERDECK_OUTPUT", "from_env"))
	defer func() { _ = os.Unsetenv("QUARTERDECK_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	// Not calling flags.Set(), so Changed is false.

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.OutputFormat, "env var should be used when flag is not set")
}

func TestLoadConfig_DataFlagMapsToDataPath(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data", "", "database path")
	require.NoError(t, flags.Set("data", "/tmp/other.db"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DataPath)
}

func TestLoadConfig_NestedEnvVar(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("QUARTERDECK_UI__PORT", "7777"))
	defer func() { _ = os.Unsetenv("QUARTERDECK_UI__PORT") }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.UI)
	assert.Equal(t, 7777, cfg.UI.Port)
}
