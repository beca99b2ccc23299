package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	apperrors "audiocheck/internal/app/errors"
)

// Environment variable names understood by the application.
const (
	EnvDataDir          = "AUDIOCHECK_DATA_DIR"
	EnvASRProvider      = "AUDIOCHECK_ASR_PROVIDER"
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvWhisperCppBinary = "WHISPER_CPP_BINARY"
	EnvWhisperCppModel  = "WHISPER_CPP_MODEL"
)

// Supported ASR provider names.
const (
	ProviderWhisperCpp = "whisper_cpp"
	ProviderOpenAI     = "openai"
)

// Config holds the resolved runtime configuration.
type Config struct {
	// DataRoot is the directory containing one folder per participant.
	DataRoot string
	// ASRProvider selects the transcription backend.
	ASRProvider string
	OpenAIKey   string
	WhisperCpp  WhisperCppConfig
}

// WhisperCppConfig locates the local whisper.cpp installation.
type WhisperCppConfig struct {
	BinaryPath string
	ModelPath  string
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error - variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// ResolveDataRoot locates the data directory holding participant folders.
// Priority: AUDIOCHECK_DATA_DIR, then ./data, then ../data. A missing data
// root is a recoverable condition - callers show setup guidance instead of
// crashing - so the sentinel apperrors.ErrNoDataRoot is returned for it.
func ResolveDataRoot() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		return "", apperrors.Wrapf(apperrors.ErrNoDataRoot, "%s=%s is not a directory", EnvDataDir, dir)
	}

	for _, dir := range []string{"data", filepath.Join("..", "data")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	return "", apperrors.ErrNoDataRoot
}

// SetupGuidance returns the user-facing instructions shown when the data
// root is missing.
func SetupGuidance() string {
	return strings.Join([]string{
		"Data folder not found. Please follow these steps:",
		"  1. Create a folder named 'data' next to the audiocheck binary (or set " + EnvDataDir + ").",
		"  2. Place your participant folders (e.g. 101, 102) inside that data folder.",
		"  3. Each participant folder needs a <id>_data.csv file and the trial audio files.",
	}, "\n")
}

// InitializeConfig loads the environment and resolves the full runtime
// configuration. The data root may legitimately be absent; that error is
// passed through untouched so the caller can distinguish it.
func InitializeConfig() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	dataRoot, err := ResolveDataRoot()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataRoot:    dataRoot,
		ASRProvider: strings.TrimSpace(os.Getenv(EnvASRProvider)),
		OpenAIKey:   strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		WhisperCpp: WhisperCppConfig{
			BinaryPath: strings.TrimSpace(os.Getenv(EnvWhisperCppBinary)),
			ModelPath:  strings.TrimSpace(os.Getenv(EnvWhisperCppModel)),
		},
	}

	if cfg.ASRProvider == "" {
		cfg.ASRProvider = ProviderWhisperCpp
	}

	return cfg, nil
}

// ValidateProvider checks that the selected ASR backend is fully configured.
// Called by commands that will actually transcribe; review-only commands
// (export, serve without a re-run) work without a configured backend.
func (c *Config) ValidateProvider() error {
	switch c.ASRProvider {
	case ProviderWhisperCpp:
		if c.WhisperCpp.BinaryPath == "" {
			return fmt.Errorf("%s must be set when using the %s provider", EnvWhisperCppBinary, ProviderWhisperCpp)
		}
		if c.WhisperCpp.ModelPath == "" {
			return fmt.Errorf("%s must be set when using the %s provider", EnvWhisperCppModel, ProviderWhisperCpp)
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("%s must be set when using the %s provider", EnvOpenAIKey, ProviderOpenAI)
		}
		if !strings.HasPrefix(c.OpenAIKey, "sk-") {
			return fmt.Errorf("invalid %s format: must start with 'sk-'", EnvOpenAIKey)
		}
	default:
		return fmt.Errorf("unknown ASR provider %q (supported: %s, %s)",
			c.ASRProvider, ProviderWhisperCpp, ProviderOpenAI)
	}
	return nil
}
