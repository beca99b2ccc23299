// Package whispercpp implements asr.Transcriber on top of a locally compiled
// whisper.cpp binary.
package whispercpp

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"audiocheck/internal/app/audio"
)

// LocalTranscriber shells out to the whisper.cpp main binary.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	logger     *zap.SugaredLogger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(binaryPath, modelPath string, logger *zap.SugaredLogger) *LocalTranscriber {
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		logger:     logger,
	}
}

// Transcript runs the whisper.cpp binary against inputFilePath and returns
// the transcribed text. The trial audio is recorded as 16-bit PCM WAV;
// anything else is rejected up front so the error message points at the file
// rather than at an opaque binary exit code.
func (lt *LocalTranscriber) Transcript(inputFilePath string) (string, error) {
	isPCM, err := audio.IsPCMWavFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("error checking input file: %w", err)
	}
	if !isPCM {
		return "", fmt.Errorf("input file %s is not a 16-bit PCM WAV file", inputFilePath)
	}

	outputBase, err := os.CreateTemp("", "audiocheck-whisper-*")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	outputBase.Close()
	os.Remove(outputBase.Name())
	defer os.Remove(outputBase.Name() + ".txt")

	args := []string{
		"-m", lt.modelPath,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputBase.Name(),
	}

	command := exec.Command(lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debugw("running transcription command",
		"binary", lt.binaryPath, "args", strings.Join(args, " "))

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("command execution error: %v, stderr: %s", err, stderr.String())
	}

	content, err := os.ReadFile(outputBase.Name() + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// Validate checks that the configured binary and model exist. Called once at
// startup so a bad path fails before the batch starts, not on trial one.
func (lt *LocalTranscriber) Validate() error {
	for _, p := range []string{lt.binaryPath, lt.modelPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("whisper.cpp path %s not usable: %w", filepath.Clean(p), err)
		}
	}
	return nil
}
