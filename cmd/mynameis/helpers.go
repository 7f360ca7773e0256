package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/model"
	"github.com/handiism/mynameis/internal/session"
)

const targetUsage = "<stage> [letter-number]"

// subjectFor returns the explicit subject, or the current child's name.
func subjectFor(ctx context.Context, a *app.App, explicit string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return a.Session.DisplayName(ctx, s), nil
	}
	if name := a.Session.ChildName(ctx); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("%w: set one with `mynameis name <name>` or pass --subject", session.ErrNoChildName)
}

// resolveTarget turns "<stage>" or "letter <n>" into a key of subject.
// Letter numbers count from 1, the way cards are titled.
func resolveTarget(subject string, args []string) (model.RecordingKey, error) {
	if len(args) == 0 {
		return model.RecordingKey{}, fmt.Errorf("missing stage: expected %s", targetUsage)
	}

	name := args[0]
	if strings.EqualFold(name, "letter") {
		name = string(model.StageLetterSound)
	}
	stage, err := model.ParseStage(name)
	if err != nil {
		return model.RecordingKey{}, err
	}

	if !stage.IsLetter() {
		if len(args) > 1 {
			return model.RecordingKey{}, fmt.Errorf("stage %s takes no letter number", stage)
		}
		return model.StageKey(subject, stage), nil
	}

	if len(args) != 2 {
		return model.RecordingKey{}, fmt.Errorf("letter sounds need a letter number: expected %s", targetUsage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return model.RecordingKey{}, fmt.Errorf("letter number %q: %w", args[1], err)
	}
	cards := model.Letters(subject)
	if n < 1 || n > len(cards) {
		return model.RecordingKey{}, fmt.Errorf("letter number %d out of range: %s has %d letters", n, subject, len(cards))
	}
	return cards[n-1].Key(subject), nil
}

func stageNames() string {
	var names []string
	for _, s := range model.AllStages() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
