// Package audio provides lightweight WAV container inspection so corrupt or
// mislabeled files can be rejected before the model is invoked.
package audio

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Info describes a WAV file's format chunk.
type Info struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

const wavFormatPCM = 1

// ReadWavInfo parses the RIFF/WAVE header of the file at path. It returns an
// error for files that are not WAV containers or are truncated before the
// fmt chunk.
func ReadWavInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var riff struct {
		ChunkID   [4]byte
		ChunkSize uint32
		Format    [4]byte
	}
	if err := binary.Read(f, binary.LittleEndian, &riff); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff.ChunkID[:]) != "RIFF" || string(riff.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("%s is not a WAV file", path)
	}

	// Walk chunks until "fmt ".
	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(f, binary.LittleEndian, &chunk); err != nil {
			return nil, fmt.Errorf("fmt chunk not found in %s: %w", path, err)
		}

		if string(chunk.ID[:]) == "fmt " {
			var fmtChunk struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(f, binary.LittleEndian, &fmtChunk); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk of %s: %w", path, err)
			}
			return &Info{
				AudioFormat:   fmtChunk.AudioFormat,
				NumChannels:   fmtChunk.NumChannels,
				SampleRate:    fmtChunk.SampleRate,
				BitsPerSample: fmtChunk.BitsPerSample,
			}, nil
		}

		// Chunks are word-aligned.
		skip := int64(chunk.Size)
		if chunk.Size%2 == 1 {
			skip++
		}
		if _, err := f.Seek(skip, 1); err != nil {
			return nil, fmt.Errorf("failed to seek past %q chunk in %s: %w", chunk.ID, path, err)
		}
	}
}

// IsPCMWavFile reports whether the file is an uncompressed 16-bit PCM WAV,
// the format the acquisition tool records.
func IsPCMWavFile(path string) (bool, error) {
	info, err := ReadWavInfo(path)
	if err != nil {
		return false, err
	}
	return info.AudioFormat == wavFormatPCM && info.BitsPerSample == 16, nil
}
