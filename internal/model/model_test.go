package model

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"file<with>brackets.mp3", "file_with_brackets.mp3"},
		{"file/with\\slashes.mp3", "file_with_slashes.mp3"},
		{"file?with*wildcards.mp3", "file_with_wildcards.mp3"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecordingKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  RecordingKey
		want string
	}{
		{"stage key", StageKey("Emma", StageFullName), "emma/full-name"},
		{"normalized subject", StageKey("  Mary   Ann ", StageSinging), "mary ann/singing"},
		{"letter key", LetterKey("Emma", 'e', 0), "emma/letter-sound/E/0"},
		{"letter fields ignored on stage keys", RecordingKey{Subject: "Emma", Stage: StageSentence, Letter: 'x', Position: 3}, "emma/sentence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordingKey_Unique(t *testing.T) {
	keys := []RecordingKey{
		LetterKey("Anna", 'A', 0),
		LetterKey("Anna", 'N', 1),
		LetterKey("Anna", 'N', 2),
		LetterKey("Anna", 'A', 3),
		StageKey("Anna", StageFullName),
		StageKey("Anna", StagePhonetic),
		StageKey("Ann", StageFullName),
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate key %q", s)
		}
		seen[s] = true
	}
}

func TestRecordingKey_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     RecordingKey
		wantErr bool
	}{
		{"valid stage", StageKey("Emma", StageFullName), false},
		{"valid letter", LetterKey("Emma", 'm', 1), false},
		{"empty subject", StageKey("   ", StageFullName), true},
		{"separator in subject", StageKey("a/b", StageFullName), true},
		{"unknown stage", StageKey("Emma", Stage("rhyme")), true},
		{"letter without letter", LetterKey("Emma", 0, 0), true},
		{"digit as letter", LetterKey("Emma", '4', 0), true},
		{"negative position", LetterKey("Emma", 'e', -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Validate() = %v, want ErrInvalidKey", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	for _, key := range []RecordingKey{
		StageKey("Emma", StageFullName),
		LetterKey("Emma", 'M', 2),
	} {
		parsed, err := ParseKey(key.String())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", key.String(), err)
		}
		if parsed.String() != key.String() {
			t.Errorf("ParseKey(%q).String() = %q", key.String(), parsed.String())
		}
	}

	for _, bad := range []string{"", "emma", "emma/rhyme", "emma/letter-sound", "emma/letter-sound/EE/1", "emma/letter-sound/E/x", "emma/full-name/E/1"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) expected error", bad)
		}
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    Stage
		wantErr bool
	}{
		{"full-name", StageFullName, false},
		{"FULL_NAME", StageFullName, false},
		{" singing ", StageSinging, false},
		{"letter-sound", StageLetterSound, false},
		{"rhyme", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStage) {
					t.Errorf("ParseStage(%q) error = %v, want ErrUnknownStage", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseStage(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestRecording_Immutable(t *testing.T) {
	payload := []byte{1, 2, 3}
	rec := NewRecording(StageKey("Emma", StageFullName), payload, "audio/mpeg", time.Now())

	payload[0] = 9
	if rec.Payload()[0] != 1 {
		t.Error("NewRecording must copy the payload")
	}

	out := rec.Payload()
	out[1] = 9
	if rec.Payload()[1] != 2 {
		t.Error("Payload must return a copy")
	}
}

func TestRecording_StoreDecode(t *testing.T) {
	key := LetterKey("Emma", 'e', 0)
	rec := NewRecording(key, []byte("RIFF....WAVE"), "audio/wav", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	stored := rec.Store()
	if stored.ID != "e0-letter-sound" {
		t.Errorf("ID = %q", stored.ID)
	}

	back, err := stored.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(back.Payload(), rec.Payload()) {
		t.Error("payload changed across Store/Decode")
	}
	if back.TakeID != rec.TakeID || back.Stage != rec.Stage || !back.Timestamp.Equal(rec.Timestamp) {
		t.Errorf("metadata changed: %+v vs %+v", back, rec)
	}

	stored.Payload = "%%%not-base64"
	if _, err := stored.Decode(); err == nil {
		t.Error("expected error for corrupt payload")
	}
}

func TestRecording_TakeIDChangesOnRerecord(t *testing.T) {
	key := StageKey("Emma", StageSinging)
	a := NewRecording(key, []byte{1}, "audio/mpeg", time.Now())
	b := NewRecording(key, []byte{1}, "audio/mpeg", time.Now())
	if a.ID != b.ID {
		t.Errorf("ID should be stable per key: %q vs %q", a.ID, b.ID)
	}
	if a.TakeID == b.TakeID {
		t.Error("TakeID should differ between takes")
	}
}

func TestLetters(t *testing.T) {
	cards := Letters("Mary-Ann")
	want := "MARYANN"
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i, c := range cards {
		if c.Letter != rune(want[i]) || c.Position != i {
			t.Errorf("card %d = %c@%d, want %c@%d", i, c.Letter, c.Position, want[i], i)
		}
	}
}

func TestNewCompletionStatus(t *testing.T) {
	tests := []struct {
		recorded, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{3, 4, 75},
		{4, 4, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := NewCompletionStatus(tt.recorded, tt.total).Percentage; got != tt.want {
			t.Errorf("NewCompletionStatus(%d, %d) = %d, want %d", tt.recorded, tt.total, got, tt.want)
		}
	}
}

func TestCollection_PathComputation(t *testing.T) {
	c := NewCollection("/exports", "Emma", PlaylistFormatPLS)
	if c.Path != "/exports/Emma" {
		t.Errorf("Path = %q", c.Path)
	}
	if c.PlaylistPath != "/exports/Emma/Emma.pls" {
		t.Errorf("PlaylistPath = %q", c.PlaylistPath)
	}

	rec := NewRecording(LetterKey("Emma", 'e', 0), []byte{1}, "audio/mpeg", time.Now())
	c.Add(StageKey("Emma", StageFullName), NewRecording(StageKey("Emma", StageFullName), []byte{1}, "audio/mpeg", time.Now()))
	clip := c.Add(LetterKey("Emma", 'e', 0), rec)

	if clip.Number != 2 {
		t.Errorf("Number = %d, want 2", clip.Number)
	}
	want := "/exports/Emma/02 Emma - Letter E (1).mp3"
	if clip.Path != want {
		t.Errorf("clip.Path = %q, want %q", clip.Path, want)
	}
}

func TestSortKeys(t *testing.T) {
	keys := []RecordingKey{
		StageKey("Emma", StageSinging),
		LetterKey("Emma", 'm', 1),
		StageKey("Emma", StageSentence),
		LetterKey("Emma", 'e', 0),
		StageKey("Emma", StageFullName),
	}
	SortKeys(keys)

	want := []string{"emma/full-name", "emma/letter-sound/E/0", "emma/letter-sound/M/1", "emma/sentence", "emma/singing"}
	for i, k := range keys {
		if k.String() != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, k.String(), want[i])
		}
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{PlaylistFormatM3U, ".m3u"},
		{PlaylistFormatPLS, ".pls"},
		{PlaylistFormatWPL, ".wpl"},
		{PlaylistFormatZPL, ".zpl"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}
