package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "audiocheck/internal/app/errors"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestResolveDataRoot_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	root, err := ResolveDataRoot()

	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestResolveDataRoot_EnvPointsNowhere(t *testing.T) {
	t.Setenv(EnvDataDir, filepath.Join(t.TempDir(), "missing"))

	_, err := ResolveDataRoot()

	assert.ErrorIs(t, err, apperrors.ErrNoDataRoot)
}

func TestResolveDataRoot_LocalDataFolder(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "data"), 0o755))
	chdir(t, base)

	root, err := ResolveDataRoot()

	require.NoError(t, err)
	assert.Equal(t, "data", root)
}

func TestResolveDataRoot_ParentDataFolder(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "nested"), 0o755))
	chdir(t, filepath.Join(base, "nested"))

	root, err := ResolveDataRoot()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "data"), root)
}

func TestResolveDataRoot_Missing(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	chdir(t, t.TempDir())

	_, err := ResolveDataRoot()

	assert.ErrorIs(t, err, apperrors.ErrNoDataRoot)
}

func TestInitializeConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvASRProvider, "")
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvWhisperCppBinary, "")
	t.Setenv(EnvWhisperCppModel, "")
	chdir(t, dir)

	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataRoot)
	assert.Equal(t, ProviderWhisperCpp, cfg.ASRProvider)
}

func TestInitializeConfig_MissingDataRootPassesSentinel(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	chdir(t, t.TempDir())

	_, err := InitializeConfig()

	assert.ErrorIs(t, err, apperrors.ErrNoDataRoot)
}

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "whisper_cpp fully configured",
			cfg: Config{
				ASRProvider: ProviderWhisperCpp,
				WhisperCpp:  WhisperCppConfig{BinaryPath: "/usr/local/bin/whisper", ModelPath: "/models/base.bin"},
			},
		},
		{
			name:    "whisper_cpp missing binary",
			cfg:     Config{ASRProvider: ProviderWhisperCpp, WhisperCpp: WhisperCppConfig{ModelPath: "/models/base.bin"}},
			wantErr: true,
		},
		{
			name:    "whisper_cpp missing model",
			cfg:     Config{ASRProvider: ProviderWhisperCpp, WhisperCpp: WhisperCppConfig{BinaryPath: "/usr/local/bin/whisper"}},
			wantErr: true,
		},
		{
			name: "openai with key",
			cfg:  Config{ASRProvider: ProviderOpenAI, OpenAIKey: "sk-test123"},
		},
		{
			name:    "openai missing key",
			cfg:     Config{ASRProvider: ProviderOpenAI},
			wantErr: true,
		},
		{
			name:    "openai malformed key",
			cfg:     Config{ASRProvider: ProviderOpenAI, OpenAIKey: "not-a-key"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{ASRProvider: "shout_into_the_void"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProvider()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
