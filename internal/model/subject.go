package model

import "unicode"

// Card is one flashcard of the letter deck.
type Card struct {
	// Letter is the upper-cased letter shown on the card.
	Letter rune

	// Position is the zero-based index of the letter among the name's letters.
	Position int
}

// Key returns the recording key of the card's letter sound for subject.
func (c Card) Key(subject string) RecordingKey {
	return LetterKey(subject, c.Letter, c.Position)
}

// Letters returns the flashcards for a name.
//
// Only letters become cards; spaces, hyphens and apostrophes are skipped and
// do not advance the position. "Mary-Ann" yields M,A,R,Y,A,N,N at 0..6.
func Letters(name string) []Card {
	var cards []Card
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		cards = append(cards, Card{Letter: unicode.ToUpper(r), Position: len(cards)})
	}
	return cards
}

// CompletionStatus aggregates how many of the fixed stages are recorded.
type CompletionStatus struct {
	Recorded   int `json:"recorded"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// NewCompletionStatus computes the truncated integer percentage.
func NewCompletionStatus(recorded, total int) CompletionStatus {
	status := CompletionStatus{Recorded: recorded, Total: total}
	if total > 0 {
		status.Percentage = recorded * 100 / total
	}
	return status
}

// Complete reports whether every counted stage is recorded.
func (c CompletionStatus) Complete() bool {
	return c.Total > 0 && c.Recorded >= c.Total
}

// LetterProgress reports how many letter cards of a name have a recording.
type LetterProgress struct {
	Recorded int `json:"recorded"`
	Total    int `json:"total"`
}

// Preferences is the persisted settings object of the app.
type Preferences struct {
	// ShowPhonetics shows the phonetic hint under each flashcard.
	ShowPhonetics bool `json:"showPhonetics"`

	// NarrateLetters plays the letter sound when a card is shown.
	NarrateLetters bool `json:"narrateLetters"`

	// AutoAdvance moves to the next card after playback ends.
	AutoAdvance bool `json:"autoAdvance"`
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		ShowPhonetics:  true,
		NarrateLetters: true,
		AutoAdvance:    false,
	}
}
