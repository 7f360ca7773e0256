package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned when a RecordingKey cannot address a clip.
var ErrInvalidKey = errors.New("invalid recording key")

const keySeparator = "/"

// RecordingKey is the composite identity of a stored clip.
//
// Letter stages are addressed by Subject+Letter+Position; every other stage
// by Subject+Stage alone (Letter and Position are ignored). Two keys that
// render to the same String() address the same clip and the last write wins.
type RecordingKey struct {
	// Subject is the child's name as entered. It is normalized when rendered.
	Subject string

	// Stage is the prompt category.
	Stage Stage

	// Letter is the card letter for letter stages.
	Letter rune

	// Position is the zero-based index of the letter within the name.
	Position int
}

// StageKey builds a key for a non-letter stage.
func StageKey(subject string, stage Stage) RecordingKey {
	return RecordingKey{Subject: subject, Stage: stage}
}

// LetterKey builds a key for a letter card.
func LetterKey(subject string, letter rune, position int) RecordingKey {
	return RecordingKey{Subject: subject, Stage: StageLetterSound, Letter: letter, Position: position}
}

// NormalizeSubject returns the canonical form of a subject name:
// trimmed, inner whitespace collapsed and lower-cased.
//
// Keys are built from this form so "Emma", " emma " and "EMMA" share clips.
func NormalizeSubject(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// SubjectPrefix returns the key prefix shared by every clip of subject.
func SubjectPrefix(subject string) string {
	return NormalizeSubject(subject) + keySeparator
}

// Validate checks that the key can address a clip.
func (k RecordingKey) Validate() error {
	subject := NormalizeSubject(k.Subject)
	switch {
	case subject == "":
		return fmt.Errorf("%w: empty subject", ErrInvalidKey)
	case strings.Contains(subject, keySeparator):
		return fmt.Errorf("%w: subject %q contains %q", ErrInvalidKey, k.Subject, keySeparator)
	case !k.Stage.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidKey, ErrUnknownStage)
	}
	if k.Stage.IsLetter() {
		if !unicode.IsLetter(k.Letter) {
			return fmt.Errorf("%w: letter stage needs a letter, got %q", ErrInvalidKey, k.Letter)
		}
		if k.Position < 0 {
			return fmt.Errorf("%w: negative position %d", ErrInvalidKey, k.Position)
		}
	}
	return nil
}

// String renders the stable storage key.
//
//	emma/full-name
//	emma/letter-sound/E/0
func (k RecordingKey) String() string {
	parts := []string{NormalizeSubject(k.Subject), string(k.Stage)}
	if k.Stage.IsLetter() {
		parts = append(parts, string(unicode.ToUpper(k.Letter)), strconv.Itoa(k.Position))
	}
	return strings.Join(parts, keySeparator)
}

// ID returns the recording identifier for this key: the stage, prefixed by
// the letter and position for letter cards ("e0-letter-sound").
func (k RecordingKey) ID() string {
	if k.Stage.IsLetter() {
		return fmt.Sprintf("%c%d-%s", unicode.ToLower(k.Letter), k.Position, k.Stage)
	}
	return string(k.Stage)
}

// Title returns a short display title for the clip.
func (k RecordingKey) Title() string {
	if k.Stage.IsLetter() {
		return fmt.Sprintf("Letter %c (%d)", unicode.ToUpper(k.Letter), k.Position+1)
	}
	return k.Stage.Label()
}

// ParseKey is the inverse of RecordingKey.String.
func ParseKey(s string) (RecordingKey, error) {
	parts := strings.Split(s, keySeparator)
	if len(parts) != 2 && len(parts) != 4 {
		return RecordingKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	stage, err := ParseStage(parts[1])
	if err != nil {
		return RecordingKey{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	key := RecordingKey{Subject: parts[0], Stage: stage}
	if stage.IsLetter() {
		if len(parts) != 4 {
			return RecordingKey{}, fmt.Errorf("%w: %q lacks letter and position", ErrInvalidKey, s)
		}
		letters := []rune(parts[2])
		if len(letters) != 1 {
			return RecordingKey{}, fmt.Errorf("%w: bad letter in %q", ErrInvalidKey, s)
		}
		pos, err := strconv.Atoi(parts[3])
		if err != nil {
			return RecordingKey{}, fmt.Errorf("%w: bad position in %q", ErrInvalidKey, s)
		}
		key.Letter = letters[0]
		key.Position = pos
	} else if len(parts) != 2 {
		return RecordingKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	if err := key.Validate(); err != nil {
		return RecordingKey{}, err
	}
	return key, nil
}

// SortKeys orders keys in deck order: stage rank first, then letter position.
func SortKeys(keys []RecordingKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := keys[i].Stage.rank(), keys[j].Stage.rank()
		if ri != rj {
			return ri < rj
		}
		return keys[i].Position < keys[j].Position
	})
}
