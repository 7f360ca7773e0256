package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/handiism/mynameis/internal/model"
)

// writeClipFile writes a file with an old ID3 tag followed by fake frames.
func writeClipFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	old := id3v2.NewEmptyTag()
	old.SetTitle("old title")
	old.SetArtist("old artist")
	if _, err := old.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("audio frames")); err != nil {
		t.Fatal(err)
	}
}

func TestTagger_SaveTags(t *testing.T) {
	dir := t.TempDir()
	c := model.NewCollection(dir, "Emma", model.PlaylistFormatM3U)
	key := model.LetterKey("Emma", 'E', 0)
	rec := model.NewRecording(key, []byte("audio frames"), "audio/mpeg", time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
	c.Add(model.StageKey("Emma", model.StageFullName), rec)
	clip := c.Add(key, rec)
	writeClipFile(t, clip.Path)

	photo := []byte{0xff, 0xd8, 0xff, 0xe0}
	if err := NewTagger(nil).SaveTags(clip, c, photo); err != nil {
		t.Fatalf("SaveTags returned error: %v", err)
	}

	tag, err := id3v2.Open(clip.Path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"title", tag.Title(), "Letter E (1)"},
		{"artist", tag.Artist(), "Emma"},
		{"album", tag.Album(), AlbumTitle},
		{"track", tag.GetTextFrame("TRCK").Text, "2/2"},
		{"date", tag.GetTextFrame("TDRC").Text, "2026-02-03T04:05:06"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pictures) != 1 {
		t.Fatalf("expected 1 attached picture, got %d", len(pictures))
	}
	if pic, ok := pictures[0].(id3v2.PictureFrame); !ok || string(pic.Picture) != string(photo) {
		t.Error("attached picture does not match the photo")
	}
}

func TestTagger_RespectsMasterSwitch(t *testing.T) {
	dir := t.TempDir()
	c := model.NewCollection(dir, "Liam", model.PlaylistFormatM3U)
	key := model.StageKey("Liam", model.StageSinging)
	clip := c.Add(key, model.NewRecording(key, []byte("x"), "audio/mpeg", time.Now()))
	writeClipFile(t, clip.Path)

	tagger := NewTagger(&TagConfig{ModifyTags: false, Title: TagModify})
	if err := tagger.SaveTags(clip, c, nil); err != nil {
		t.Fatalf("SaveTags returned error: %v", err)
	}

	tag, err := id3v2.Open(clip.Path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()
	if tag.Title() != "old title" {
		t.Errorf("title = %q, want untouched", tag.Title())
	}
}

func TestTagger_MissingFile(t *testing.T) {
	c := model.NewCollection(t.TempDir(), "Ava", model.PlaylistFormatM3U)
	key := model.StageKey("Ava", model.StageFullName)
	clip := c.Add(key, model.NewRecording(key, []byte("x"), "audio/mpeg", time.Now()))

	if err := NewTagger(nil).SaveTags(clip, c, nil); err == nil {
		t.Fatal("expected error for a clip that was never written")
	}
}
