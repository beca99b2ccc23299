package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWav writes a minimal WAV file with the given fmt chunk values.
func writeWav(t *testing.T, path string, audioFormat, bitsPerSample uint16, sampleRate uint32) {
	t.Helper()

	var buf bytes.Buffer
	data := []byte{0, 0, 0, 0}

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, audioFormat)
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, sampleRate*uint32(bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, bitsPerSample/8)
	binary.Write(&buf, binary.LittleEndian, bitsPerSample)

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestReadWavInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.wav")
	writeWav(t, path, 1, 16, 16000)

	info, err := ReadWavInfo(path)

	require.NoError(t, err)
	assert.Equal(t, uint16(1), info.AudioFormat)
	assert.Equal(t, uint16(16), info.BitsPerSample)
	assert.Equal(t, uint32(16000), info.SampleRate)
}

func TestReadWavInfo_NotWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("this is not audio at all"), 0o644))

	_, err := ReadWavInfo(path)

	assert.Error(t, err)
}

func TestReadWavInfo_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))

	_, err := ReadWavInfo(path)

	assert.Error(t, err)
}

func TestIsPCMWavFile(t *testing.T) {
	dir := t.TempDir()

	pcm := filepath.Join(dir, "pcm.wav")
	writeWav(t, pcm, 1, 16, 44100)

	float := filepath.Join(dir, "float.wav")
	writeWav(t, float, 3, 32, 44100)

	ok, err := IsPCMWavFile(pcm)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsPCMWavFile(float)
	require.NoError(t, err)
	assert.False(t, ok)
}
