package audio

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"
	"github.com/handiism/mynameis/internal/model"
)

// AlbumTitle is written to the TALB frame of every exported clip.
const AlbumTitle = "My Name Is"

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the recording.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// This allows fine-grained control over which frames are written when
// exporting clips. The child's name goes to the artist frames, the fixed
// album title to the album frame and the card title to the title frame.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Artist:      TagModify,      // child's name
//	    Album:       TagModify,      // "My Name Is"
//	    Title:       TagModify,      // "Letter E (1)"
//	    Comments:    TagEmpty,
//	    AlbumArtist: TagDoNotModify,
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// Date controls the TDRC (Recording time) frame.
	Date TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Comments controls the COMM frame, which records the storage key and
	// take of the clip.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// By default every frame is set to TagModify, which writes it from the
// recording and its collection. The comment frame records the storage key
// and take ID, so an exported file can be traced back to its clip.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Year:        TagModify,
		Date:        TagModify,
		TrackNumber: TagModify,
		Title:       TagModify,
		Comments:    TagModify,
	}
}

// Tagger writes ID3 tags to exported MP3 clips.
//
// Tagger uses the id3v2 library to write:
//   - Artist, Album Artist, Album, Title
//   - Track Number, Year, Recording time
//   - A comment naming the storage key and take
//   - Cover Art (the child photo as an attached picture)
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(clip, collection, photoJPEG); err != nil {
//	    logger.Warn("tagging failed", zap.Error(err))
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags to the clip's file on disk.
//
// This method:
//  1. Opens the written clip (or creates empty tags if it has none)
//  2. Updates string tags based on TagConfig settings
//  3. Embeds the child photo as the front cover if given
//  4. Saves the modified tags to the file
//
// Parameters:
//   - clip: The clip being tagged (provides title, key, take and path)
//   - c: The collection (provides the child's name and clip count)
//   - photo: JPEG bytes of the child photo (nil to skip cover art)
//
// Returns an error if the file cannot be opened or saved.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(clip, collection, photoJPEG)
func (t *Tagger) SaveTags(clip *model.Clip, c *model.Collection, photo []byte) error {
	tag, err := id3v2.Open(clip.Path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("tag %s: %w", clip.Path, err)
		}
		return err
	}
	defer tag.Close()

	tag.SetVersion(4)

	if t.config.ModifyTags {
		t.updateStringTags(tag, clip, c)
	}

	if photo != nil {
		t.updatePhoto(tag, photo)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, clip *model.Clip, c *model.Collection) {
	ts := clip.Recording.Timestamp

	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(c.DisplayName)
	}

	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, c.DisplayName)
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(AlbumTitle)
	}

	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if !ts.IsZero() {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, ts.Format("2006"))
		}
	}

	switch t.config.Date {
	case TagEmpty:
		tag.DeleteFrames("TDRC")
	case TagModify:
		if !ts.IsZero() {
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, ts.Format("2006-01-02T15:04:05"))
		}
	}

	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d/%d", clip.Number, len(c.Clips)))
	}

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(clip.Title)
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		tag.DeleteFrames(tag.CommonID("Comments"))
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "mynameis",
			Text:        fmt.Sprintf("%s take %s", clip.Key, clip.Recording.TakeID),
		})
	}

	tag.SetGenre("Speech")
}

// updatePhoto embeds the child photo as an attached picture frame.
func (t *Tagger) updatePhoto(tag *id3v2.Tag, photo []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     photo,
	}
	tag.AddAttachedPicture(pic)
}
