package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStage is returned when a stage name is outside the closed set.
var ErrUnknownStage = errors.New("unknown stage")

// Stage is the category of recording prompt that produced a clip.
type Stage string

const (
	// StageFullName is the child's whole name spoken once.
	StageFullName Stage = "full-name"

	// StagePhonetic is the name sounded out slowly.
	StagePhonetic Stage = "phonetic"

	// StageSinging is the name sung.
	StageSinging Stage = "singing"

	// StageSentence is "My name is ..." spoken as a sentence.
	StageSentence Stage = "sentence"

	// StageLetterSound is the sound of a single letter of the name.
	// It is the only stage addressed by letter and position.
	StageLetterSound Stage = "letter-sound"
)

// FixedStages returns the stages counted by the completion aggregate,
// in prompt order.
func FixedStages() []Stage {
	return []Stage{StageFullName, StagePhonetic, StageSinging, StageSentence}
}

// AllStages returns every known stage.
func AllStages() []Stage {
	return append(FixedStages(), StageLetterSound)
}

// ParseStage converts a string into a Stage.
//
// Matching is case-insensitive and accepts underscores in place of dashes,
// so "FULL_NAME" parses as StageFullName.
func ParseStage(s string) (Stage, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, st := range AllStages() {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// Valid reports whether s belongs to the closed stage set.
func (s Stage) Valid() bool {
	for _, st := range AllStages() {
		if s == st {
			return true
		}
	}
	return false
}

// IsLetter reports whether the stage is addressed per letter.
func (s Stage) IsLetter() bool {
	return s == StageLetterSound
}

// Label returns a human readable name for the stage.
func (s Stage) Label() string {
	switch s {
	case StageFullName:
		return "Full name"
	case StagePhonetic:
		return "Phonetic"
	case StageSinging:
		return "Song"
	case StageSentence:
		return "Sentence"
	case StageLetterSound:
		return "Letter sound"
	default:
		return string(s)
	}
}

// rank orders stages the way the flashcard deck plays them:
// the name, its phonetic form, the letters, then the sentence and song.
func (s Stage) rank() int {
	switch s {
	case StageFullName:
		return 0
	case StagePhonetic:
		return 1
	case StageLetterSound:
		return 2
	case StageSentence:
		return 3
	case StageSinging:
		return 4
	default:
		return 5
	}
}
