package model

import "fmt"

// TrialKey identifies one trial row within a participant's result set.
// Block and trial together are unique and stable across reruns.
type TrialKey struct {
	Block string
	Trial string
}

func (k TrialKey) String() string {
	return fmt.Sprintf("block %s, trial %s", k.Block, k.Trial)
}

// Trial is one audio-clip-to-target-phrase evaluation unit, discovered by the
// catalog scanner. Immutable after discovery.
type Trial struct {
	ParticipantID string
	Key           TrialKey
	// AudioPath is the path from the metadata CSV, separators normalized.
	AudioPath string
	// ResolvedAudioPath is the absolute path the audio was found at.
	// Empty when Unresolved is true.
	ResolvedAudioPath string
	TargetPhrase      string
	// Unresolved marks trials whose audio file was missing at scan time.
	// The runner records score 0 / empty hypothesis for them without
	// invoking the model.
	Unresolved bool
}
