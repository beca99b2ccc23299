// Package asr defines the speech-to-text contract. The model itself is an
// opaque external capability: audio file in, text out.
package asr

// Transcriber defines a transcription interface for converting audio files to text.
type Transcriber interface {
	Transcript(inputFilePath string) (string, error)
}
