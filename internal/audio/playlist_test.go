package audio

import (
	"strings"
	"testing"
	"time"

	"github.com/handiism/mynameis/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	c := createTestCollection("Emma")
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist(c)

	want := "01 Emma - Full name.mp3\n02 Emma - Letter E (1).mp3\n03 Emma - Song.mp3\n"
	if content != want {
		t.Errorf("M3U content = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	c := createTestCollection("Emma")
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist(c)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Emma - Letter E (1)\n") {
		t.Errorf("Extended M3U should contain an EXTINF line per clip, got %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	c := createTestCollection("Emma")
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist(c)

	checks := []string{"[playlist]\n", "File1=01 Emma - Full name.mp3\n", "Title2=Letter E (1)\n", "Length3=-1\n", "NumberOfEntries=3\n"}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("PLS should contain %q, got %q", check, content)
		}
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	c := createTestCollection("Emma")
	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)

	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>My name is Emma</title>") {
		t.Error("WPL should carry the collection title")
	}
	if strings.Count(content, "<media src=") != 3 {
		t.Error("WPL should contain one media element per clip")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	c := createTestCollection("Emma")
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false)

	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `trackTitle="Song"`) {
		t.Error("ZPL should contain trackTitle attribute")
	}
	if strings.Contains(content, "duration=") {
		t.Error("ZPL should not claim a duration")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	c := createTestCollection(`Zoë & "Jo" <Lee>`)
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false)

	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "Zoë &amp; &quot;Jo&quot; &lt;Lee&gt;") {
		t.Errorf("ZPL should escape special characters, got %q", content)
	}
	if strings.Contains(content, "<Lee>") {
		t.Error("ZPL should escape < and >")
	}
}

func createTestCollection(name string) *model.Collection {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := model.NewCollection("/exports", name, model.PlaylistFormatM3U)

	keys := []model.RecordingKey{
		model.StageKey(name, model.StageFullName),
		model.LetterKey(name, 'E', 0),
		model.StageKey(name, model.StageSinging),
	}
	for _, key := range keys {
		c.Add(key, model.NewRecording(key, []byte("frames"), "audio/mpeg", ts))
	}
	return c
}
