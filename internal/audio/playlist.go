package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/mynameis/internal/model"
)

// unknownLength is the playlist length of a clip whose duration was never
// measured. Recordings carry no duration, so every entry uses it.
const unknownLength = -1

// PlaylistCreator generates deck playlists in various formats.
//
// The playlist lists a collection's clips in deck order, so a media player
// plays the full name first, then each letter, then the remaining stages.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(collection)
//	os.WriteFile(collection.PlaylistPath, []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Emma - Full name
//	// 01 Emma - Full name.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for a collection.
//
// Returns the playlist as a string, ready to be written to a file.
// Clip paths are written relative to the collection folder (just the
// file name), where the playlist file itself is stored. Lengths are
// written as -1 since recordings carry no duration.
//
// Example:
//
//	content := creator.CreatePlaylist(collection)
//	err := os.WriteFile("/exports/Emma/Emma.m3u", []byte(content), 0644)
func (p *PlaylistCreator) CreatePlaylist(c *model.Collection) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(c)
	case model.PlaylistFormatWPL:
		return p.createWPL(c)
	case model.PlaylistFormatZPL:
		return p.createZPL(c)
	default:
		return p.createM3U(c)
	}
}

// createM3U generates an M3U playlist, with an #EXTINF line per clip when
// extended.
func (p *PlaylistCreator) createM3U(c *model.Collection) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, clip := range c.Clips {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", unknownLength, c.DisplayName, clip.Title)
		}
		sb.WriteString(filepath.Base(clip.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates an INI-style PLS playlist:
//
//	[playlist]
//	File1=01 Emma - Full name.mp3
//	Title1=Full name
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(c *model.Collection) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, clip := range c.Clips {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, filepath.Base(clip.Path))
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, clip.Title)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, unknownLength)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(c.Clips))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(c *model.Collection) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(c.Title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, clip := range c.Clips {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(filepath.Base(clip.Path)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune playlist. Unlike WPL it carries per-clip
// titles; the duration attribute is left out since it is unknown.
func (p *PlaylistCreator) createZPL(c *model.Collection) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(c.Title))
	sb.WriteString("    <meta name=\"Generator\" content=\"mynameis\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(c.Clips))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, clip := range c.Clips {
		fmt.Fprintf(&sb, "      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\"/>\n",
			escapeXML(filepath.Base(clip.Path)),
			escapeXML(c.Title),
			escapeXML(c.DisplayName),
			escapeXML(clip.Title))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes & < > " and ' for attribute and text content.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)
