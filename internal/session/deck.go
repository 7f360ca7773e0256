package session

import (
	"fmt"

	"github.com/handiism/mynameis/internal/model"
)

// Prompt is one fixed recording stage as shown to the parent.
type Prompt struct {
	Stage model.Stage
	Title string
	Text  string
}

// Prompts returns the fixed-stage prompts for name, in recording order.
func Prompts(name string) []Prompt {
	prompts := make([]Prompt, 0, len(model.FixedStages()))
	for _, stage := range model.FixedStages() {
		prompts = append(prompts, Prompt{Stage: stage, Title: stage.Label(), Text: promptText(stage, name)})
	}
	return prompts
}

func promptText(stage model.Stage, name string) string {
	switch stage {
	case model.StageFullName:
		return fmt.Sprintf("Say %s clearly, the way you call your child.", name)
	case model.StagePhonetic:
		return fmt.Sprintf("Sound out %s slowly, one part at a time.", name)
	case model.StageSinging:
		return fmt.Sprintf("Sing %s to any tune you like.", name)
	case model.StageSentence:
		return SentenceFor(name)
	default:
		return ""
	}
}

// SentenceFor returns the sentence recorded for the sentence stage.
func SentenceFor(name string) string {
	return "My name is " + name
}

// Deck walks the letter flashcards of a name. The zero value is an empty
// deck.
type Deck struct {
	subject string
	cards   []model.Card
	index   int
}

// NewDeck builds the deck of name.
func NewDeck(name string) *Deck {
	return &Deck{subject: name, cards: model.Letters(name)}
}

// Subject returns the name the deck was built from.
func (d *Deck) Subject() string {
	return d.subject
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Index returns the position of the current card.
func (d *Deck) Index() int {
	return d.index
}

// Cards returns a copy of every card.
func (d *Deck) Cards() []model.Card {
	return append([]model.Card(nil), d.cards...)
}

// Current returns the card under the cursor.
func (d *Deck) Current() (model.Card, bool) {
	if len(d.cards) == 0 {
		return model.Card{}, false
	}
	return d.cards[d.index], true
}

// CurrentKey returns the recording key of the current card.
func (d *Deck) CurrentKey() (model.RecordingKey, bool) {
	card, ok := d.Current()
	if !ok {
		return model.RecordingKey{}, false
	}
	return card.Key(d.subject), true
}

// Next moves to the following card. It reports false on the last card.
func (d *Deck) Next() bool {
	if d.index+1 >= len(d.cards) {
		return false
	}
	d.index++
	return true
}

// Prev moves to the previous card. It reports false on the first card.
func (d *Deck) Prev() bool {
	if d.index == 0 {
		return false
	}
	d.index--
	return true
}

// Seek moves the cursor to i, clamped to the deck.
func (d *Deck) Seek(i int) {
	d.index = min(max(i, 0), max(len(d.cards)-1, 0))
}
